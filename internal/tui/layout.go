package tui

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.Table.SetSize(m.Width, m.Height-ChromeHeight)
	m.Detail.SetWidth(m.Width)
}

// contentHeight is the space left for the table between header and pager
func (m Model) contentHeight() int {
	return max(m.Height-ChromeHeight, 1)
}
