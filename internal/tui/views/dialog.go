package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogKind distinguishes blocking messages from yes/no questions.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogAlert
	DialogConfirm
)

// ConfirmedMsg carries the answer to a confirm dialog.
type ConfirmedMsg struct {
	Accepted bool
}

// DialogModel is a blocking overlay. An alert closes on any key; a confirm
// closes on y/enter (accept) or n/esc (decline).
type DialogModel struct {
	kind DialogKind
	text string

	width  int
	height int
}

// SetSize updates the screen dimensions the dialog is centered in.
func (m *DialogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Alert shows a message that any key dismisses.
func (m *DialogModel) Alert(text string) {
	m.kind = DialogAlert
	m.text = text
}

// Confirm asks a yes/no question.
func (m *DialogModel) Confirm(text string) {
	m.kind = DialogConfirm
	m.text = text
}

// Active reports whether a dialog is showing.
func (m DialogModel) Active() bool {
	return m.kind != DialogNone
}

// Kind returns the showing dialog kind.
func (m DialogModel) Kind() DialogKind {
	return m.kind
}

// Text returns the dialog message.
func (m DialogModel) Text() string {
	return m.text
}

func answer(accepted bool) tea.Cmd {
	return func() tea.Msg {
		return ConfirmedMsg{Accepted: accepted}
	}
}

// Update handles key presses while the dialog is showing.
func (m DialogModel) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.kind {
	case DialogAlert:
		m.kind = DialogNone
		return m, nil
	case DialogConfirm:
		switch key.String() {
		case "y", "Y", "enter":
			m.kind = DialogNone
			return m, answer(true)
		case "n", "N", "esc", "q":
			m.kind = DialogNone
			return m, answer(false)
		}
	}
	return m, nil
}

// View renders the dialog centered on screen.
func (m DialogModel) View() string {
	width := max(min(m.width-8, 60), 20)

	var box string
	switch m.kind {
	case DialogConfirm:
		body := valueStyle.Width(width).Render(m.text) + "\n\n" + helpStyle.Render("y: proceed • n: cancel")
		box = confirmStyle.Render(body)
	default:
		body := valueStyle.Width(width).Render(m.text) + "\n\n" + helpStyle.Render("press any key")
		box = alertStyle.Render(body)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
