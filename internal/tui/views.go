package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pictable/internal/records"
	"github.com/mmcdole/pictable/internal/tui/styles"
)

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	content := lipgloss.NewStyle().
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(m.renderBody())

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderPager(),
		m.renderFooter(),
	)

	// Overlay whichever modal is open
	var modal string
	switch {
	case m.Detail.IsVisible():
		modal = m.Detail.View()
	case m.AlbumPicker.IsVisible():
		modal = m.AlbumPicker.View()
	case m.SizePicker.IsVisible():
		modal = m.SizePicker.View()
	case m.QueryInput.IsVisible():
		modal = m.QueryInput.View()
	}
	if modal != "" {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			modal)
	}

	return view
}

// renderHeader shows the app name and the active filters
func (m Model) renderHeader() string {
	parts := []string{styles.BadgeStyle.Render("pictable")}

	if f := m.Store.Filter(); f.Active {
		parts = append(parts, styles.DimBadgeStyle.Render("album "+f.String()))
	}
	if q := m.Store.Query(); q != "" {
		parts = append(parts, styles.DimBadgeStyle.Render("title ~ "+styles.Truncate(q, 24)))
	}

	return strings.Join(parts, " ")
}

// renderBody renders the table or the state that replaces it
func (m Model) renderBody() string {
	switch m.Store.Status() {
	case records.StatusIdle, records.StatusLoading:
		if m.Store.Len() == 0 {
			return "\n " + RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Fetching photos...")
		}
	case records.StatusFailed:
		if m.Store.Len() == 0 {
			return "\n " + RenderError(m.Store.Err(), m.Width) + "\n\n " +
				styles.DimStyle.Render("press ") + styles.AccentStyle.Render("r") +
				styles.DimStyle.Render(" to retry")
		}
	}

	if m.Store.VisibleLen() == 0 {
		msg := "No photos"
		if m.Store.Filter().Active || m.Store.Query() != "" {
			msg = "No photos match the current filter"
		}
		return "\n " + styles.DimStyle.Render(msg)
	}

	return m.Table.View()
}

// renderPager renders "page 2/3 · 6-10 of 12 · 5 per page"
func (m Model) renderPager() string {
	if m.Store.Status() != records.StatusReady {
		return ""
	}
	view := m.Store.Page()
	return m.Pager.View() + styles.DimStyle.Render(
		" · "+rangeLabel(view)+" · "+records.PageSizeLabel(view.PageSize)+" per page")
}

// rangeLabel renders the rows of the page as "6-10 of 12"
func rangeLabel(v records.PageView) string {
	if v.Count == 0 || len(v.Rows) == 0 {
		return fmt.Sprintf("0 of %d", v.Count)
	}
	return fmt.Sprintf("%d-%d of %d", v.First+1, v.First+len(v.Rows), v.Count)
}

// renderFooter renders a single-line footer: status left, key hints right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Store.Status() == records.StatusLoading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.Store.Status() == records.StatusFailed:
		left = styles.ErrorStyle.Render("fetch failed")
	}

	h := m.Help
	h.Width = max(m.Width-lipgloss.Width(left)-2, 0)
	right := h.View(m.keys)

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true

	body := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(m.keys) + "\n\n" +
		styles.DimStyle.Render("Press ? or esc to return")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// RenderError renders an error message
func RenderError(err error, width int) string {
	if err == nil {
		return ""
	}
	msg := wordWrap(err.Error(), width-4)
	return styles.ErrorStyle.Render("Error: " + msg)
}
