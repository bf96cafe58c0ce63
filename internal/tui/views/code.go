package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/quantumvedas/yajur/internal/typewriter"
)

const codePlaceholder = "Generated code will appear here..."

// CodeModel is the generated-code panel. Text is revealed through a
// typewriter and shown in a scrollable viewport.
type CodeModel struct {
	typer      typewriter.Model
	viewport   viewport.Model
	generating bool

	width  int
	height int
}

// NewCodeModel creates the code panel.
func NewCodeModel(interval time.Duration) CodeModel {
	return CodeModel{
		typer:    typewriter.New(interval),
		viewport: viewport.New(0, 0),
	}
}

// SetSize updates the view dimensions.
func (m *CodeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 1)
	m.viewport.Height = max(height-4, 1)
	m.refresh()
}

// SetGenerating toggles the in-flight placeholder and clears the panel.
func (m *CodeModel) SetGenerating(on bool) {
	m.generating = on
	if on {
		m.typer, _ = m.typer.Start("")
	}
	m.refresh()
}

// Start reveals text from the beginning, replacing whatever was shown.
func (m CodeModel) Start(text string) (CodeModel, tea.Cmd) {
	var cmd tea.Cmd
	m.typer, cmd = m.typer.Start(text)
	m.viewport.GotoTop()
	m.refresh()
	return m, cmd
}

// Finish shows the whole text at once, ending the animation.
func (m *CodeModel) Finish() {
	m.typer = m.typer.Finish()
	m.refresh()
}

// Revealing reports whether the typewriter is still running.
func (m CodeModel) Revealing() bool {
	return m.typer.Revealing()
}

// Displayed returns the revealed prefix.
func (m CodeModel) Displayed() string {
	return m.typer.View()
}

// Full returns the complete text, revealed or not.
func (m CodeModel) Full() string {
	return m.typer.Full()
}

// Update handles messages.
func (m CodeModel) Update(msg tea.Msg) (CodeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case typewriter.TickMsg:
		var cmd tea.Cmd
		m.typer, cmd = m.typer.Update(msg)
		m.refresh()
		if m.typer.Revealing() {
			m.viewport.GotoBottom()
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "home":
			m.viewport.GotoTop()
			return m, nil
		case "end":
			m.viewport.GotoBottom()
			return m, nil
		case "enter", " ":
			if m.typer.Revealing() {
				m.Finish()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *CodeModel) refresh() {
	m.viewport.SetContent(m.content())
}

func (m CodeModel) content() string {
	if m.generating {
		return loadingStyle.Render("Generating...")
	}
	shown := m.typer.View()
	if shown == "" {
		return placeholderStyle.Render(codePlaceholder)
	}
	width := m.viewport.Width
	if width > 0 {
		shown = wrap.String(wordwrap.String(shown, width), width)
	}
	return codeStyle.Render(shown)
}

// View renders the code panel.
func (m CodeModel) View(focused bool) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Generated Code"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())

	style := panelStyle
	if focused {
		style = panelFocusedStyle
	}
	return style.Width(max(m.width-2, 1)).Height(max(m.height-2, 1)).Render(b.String())
}
