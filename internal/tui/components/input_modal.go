package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pictable/internal/tui/styles"
)

// InputResult says what the last key did to an InputModal
type InputResult int

const (
	InputPending   InputResult = iota // still editing
	InputChanged                      // value edited
	InputSubmitted                    // enter pressed
	InputCancelled                    // esc pressed
)

// InputModal is a one-line text input popup
type InputModal struct {
	visible bool
	title   string
	input   textinput.Model
}

// NewInputModal creates a new input modal
func NewInputModal(placeholder string) InputModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 30
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{
		input: ti,
	}
}

// Show displays the modal, prefilled with value
func (m *InputModal) Show(title, value string) {
	m.visible = true
	m.title = title
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Update handles input events. Enter and esc hide the modal.
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, InputResult) {
	if !m.visible {
		return m, nil, InputPending
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.Hide()
			return m, nil, InputSubmitted
		case "esc":
			m.Hide()
			return m, nil, InputCancelled
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, cmd, InputChanged
	}
	return m, cmd, InputPending
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 36

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	inputStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark)

	hint := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark).
		Foreground(styles.DimGray).
		Render("enter keep · esc clear")

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		"",
		inputStyle.Render(m.input.View()),
		"",
		hint,
	)

	return styles.ModalStyle.Render(content)
}
