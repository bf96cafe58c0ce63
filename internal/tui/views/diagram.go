package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DiagramModel is the modal that shows the circuit diagram as returned,
// without animation. Closing it keeps the text so it can be reopened.
type DiagramModel struct {
	open     bool
	text     string
	viewport viewport.Model

	width  int
	height int
}

// NewDiagramModel creates a closed modal.
func NewDiagramModel() DiagramModel {
	return DiagramModel{viewport: viewport.New(0, 0)}
}

// SetSize updates the screen dimensions the modal is centered in.
func (m *DiagramModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(min(width-8, 100), 10)
	m.viewport.Height = max(height-12, 3)
	m.viewport.SetContent(m.text)
}

// Open shows text in the modal.
func (m *DiagramModel) Open(text string) {
	m.text = text
	m.open = true
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

// Close hides the modal.
func (m *DiagramModel) Close() {
	m.open = false
}

// IsOpen reports whether the modal is visible.
func (m DiagramModel) IsOpen() bool {
	return m.open
}

// Text returns the diagram text.
func (m DiagramModel) Text() string {
	return m.text
}

// Update scrolls the modal.
func (m DiagramModel) Update(msg tea.Msg) (DiagramModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the modal centered on screen.
func (m DiagramModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Circuit Diagram"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("y: copy • j/k: scroll • esc: close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(b.String()))
}
