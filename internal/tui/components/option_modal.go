package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pictable/internal/tui/styles"
)

// Option is one choice of an OptionModal
type Option struct {
	Label string
	Value int
}

const (
	optionRowWidth    = 20
	optionWindowLines = 10
)

// OptionModal is a small popup for choosing one value from a list, used for
// the album filter and the rows-per-page setting
type OptionModal struct {
	visible bool
	title   string
	options []Option
	cursor  int
	offset  int
	active  int // value currently in effect
}

// NewOptionModal creates a hidden modal
func NewOptionModal(title string) OptionModal {
	return OptionModal{title: title}
}

// Show displays the modal with the cursor on the active value
func (m *OptionModal) Show(options []Option, active int) {
	m.visible = true
	m.options = options
	m.active = active
	m.cursor = 0
	for i, opt := range options {
		if opt.Value == active {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

// Hide dismisses the modal
func (m *OptionModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m OptionModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *OptionModal) HandleKey(key string) (handled bool, selection *Option) {
	if !m.visible {
		return false, nil
	}

	last := len(m.options) - 1
	switch key {
	case "j", "down":
		m.cursor = min(m.cursor+1, last)
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "ctrl+d", "pgdown":
		m.cursor = min(m.cursor+optionWindowLines, last)
	case "ctrl+u", "pgup":
		m.cursor = max(m.cursor-optionWindowLines, 0)
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(last, 0)
	case "enter":
		if len(m.options) == 0 {
			m.visible = false
			return true, nil
		}
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "q":
		m.visible = false
		return true, nil
	}

	m.scrollToCursor()
	return true, nil // consume all keys when visible
}

func (m *OptionModal) scrollToCursor() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+optionWindowLines {
		m.offset = m.cursor - optionWindowLines + 1
	}
}

// View renders the modal
func (m OptionModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	end := min(m.offset+optionWindowLines, len(m.options))

	var lines []string
	if m.offset > 0 {
		lines = append(lines, styles.DimStyle.Render(styles.Pad("  ↑ more", optionRowWidth)))
	}
	for i := m.offset; i < end; i++ {
		opt := m.options[i]
		isActive := opt.Value == m.active

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, optionRowWidth)

		switch {
		case i == m.cursor:
			lines = append(lines, styles.CursorRowStyle.Render(text))
		case isActive:
			lines = append(lines, styles.ActiveRowStyle.Render(text))
		default:
			lines = append(lines, styles.NormalRowStyle.Render(text))
		}
	}
	if end < len(m.options) {
		lines = append(lines, styles.DimStyle.Render(styles.Pad("  ↓ more", optionRowWidth)))
	}

	content := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render(m.title) + "\n" + content)
}
