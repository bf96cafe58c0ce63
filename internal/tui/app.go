package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/quantumvedas/yajur/internal/catalog"
	"github.com/quantumvedas/yajur/internal/clipboard"
	"github.com/quantumvedas/yajur/internal/llm"
	"github.com/quantumvedas/yajur/internal/prompt"
	"github.com/quantumvedas/yajur/internal/selection"
	"github.com/quantumvedas/yajur/internal/tui/views"
	"github.com/quantumvedas/yajur/internal/typewriter"
)

// Messages shown by the workflow guards.
const (
	MsgSelectOption   = "Please select at least one option from the options panel."
	MsgGenerateFirst  = "Please generate the quantum circuit code first before displaying the circuit."
	MsgWaitForCode    = "Wait for the code to finish generating before displaying the circuit."
	MsgConfirmDiagram = "Make sure you have copied the code before generating the circuit. Proceed? (y/n)"
	MsgCopied         = "Copied to clipboard!"
	MsgNoDiagram      = "No circuit diagram yet. Press d to build one."
)

const (
	title          = "YAJUR - Quantum Circuit Generator"
	copiedDuration = 2 * time.Second
)

// Focus is the panel receiving navigation keys.
type Focus int

const (
	FocusOptions Focus = iota
	FocusCode
)

// Options wires the app to its collaborators.
type Options struct {
	Catalog        catalog.Catalog
	Composer       *prompt.Composer
	Client         *llm.Client
	Clipboard      clipboard.Writer
	Logger         *zap.Logger
	TypingInterval time.Duration
	ConfirmDiagram bool

	// Context bounds in-flight requests. Defaults to context.Background.
	Context context.Context
	// Now is used for the footer year. Defaults to time.Now.
	Now func() time.Time
}

// Message types
type codeResultMsg struct {
	id     int
	result llm.Result
}

type diagramResultMsg struct {
	id     int
	result llm.Result
}

// clearCopiedMsg hides the copied status set by copy number id.
type clearCopiedMsg struct {
	id int
}

func clearCopiedAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{id: id}
	})
}

// AppModel is the root Bubble Tea model: options on one side, generated
// code on the other, with the diagram modal and dialogs drawn on top.
type AppModel struct {
	// Core dependencies
	composer  *prompt.Composer
	client    *llm.Client
	clipboard clipboard.Writer
	log       *zap.Logger
	ctx       context.Context
	now       func() time.Time

	confirmDiagram bool

	selection *selection.State

	// Sub-models
	options views.OptionsModel
	code    views.CodeModel
	diagram views.DiagramModel
	dialog  views.DialogModel

	focus Focus

	// Request state. Only the result of the latest request of each kind
	// is accepted.
	generating    bool
	building      bool
	reqSeq        int
	codeReq       int
	diagramReq    int
	codeResult    *llm.Result
	diagramResult *llm.Result

	copied   bool
	copySeq  int
	showHelp bool

	// Layout state
	width  int
	height int
	ready  bool
}

// NewApp creates the application model.
func NewApp(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	composer := opts.Composer
	if composer == nil {
		composer = prompt.NewComposer()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}
	interval := opts.TypingInterval
	if interval <= 0 {
		interval = typewriter.DefaultInterval
	}

	sel := selection.New(opts.Catalog)
	return AppModel{
		composer:       composer,
		client:         opts.Client,
		clipboard:      clip,
		log:            log.Named("tui"),
		ctx:            ctx,
		now:            now,
		confirmDiagram: opts.ConfirmDiagram,
		selection:      sel,
		options:        views.NewOptionsModel(opts.Catalog, sel),
		code:           views.NewCodeModel(interval),
		diagram:        views.NewDiagramModel(),
	}
}

// Init initializes the model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Selection exposes the selection state.
func (m AppModel) Selection() *selection.State {
	return m.selection
}

// Update handles messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case typewriter.TickMsg:
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd

	case codeResultMsg:
		if msg.id != m.codeReq {
			m.log.Debug("dropping stale code result", zap.Int("id", msg.id), zap.Int("current", m.codeReq))
			return m, nil
		}
		m.generating = false
		m.code.SetGenerating(false)
		result := msg.result
		m.codeResult = &result
		var cmd tea.Cmd
		m.code, cmd = m.code.Start(result.Text)
		return m, cmd

	case diagramResultMsg:
		if msg.id != m.diagramReq {
			m.log.Debug("dropping stale diagram result", zap.Int("id", msg.id), zap.Int("current", m.diagramReq))
			return m, nil
		}
		m.building = false
		if !msg.result.OK() {
			m.dialog.Alert(msg.result.Text)
			return m, nil
		}
		result := msg.result
		m.diagramResult = &result
		m.diagram.Open(result.Text)
		return m, nil

	case views.ConfirmedMsg:
		if !msg.Accepted {
			return m, nil
		}
		return m.requestDiagram()

	case views.OptionSelectedMsg:
		if msg.Err != nil {
			m.log.Warn("option rejected",
				zap.String("category", msg.Category),
				zap.String("value", msg.Value),
				zap.Error(msg.Err))
			m.dialog.Alert(msg.Err.Error())
		}
		return m, nil

	case clearCopiedMsg:
		if msg.id == m.copySeq {
			m.copied = false
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays take every key while visible.
	if m.dialog.Active() {
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.diagram.IsOpen() {
		switch msg.String() {
		case "esc", "q", "v":
			m.diagram.Close()
			return m, nil
		case "y":
			return m.copy(m.diagram.Text())
		}
		var cmd tea.Cmd
		m.diagram, cmd = m.diagram.Update(msg)
		return m, cmd
	}
	if m.options.PickerOpen() {
		var cmd tea.Cmd
		m.options, cmd = m.options.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab":
		if m.focus == FocusOptions {
			m.focus = FocusCode
		} else {
			m.focus = FocusOptions
		}
		return m, nil
	case "g":
		return m.generateCode()
	case "d":
		return m.displayCircuit()
	case "y":
		if !m.canCopyCode() {
			return m, nil
		}
		return m.copy(m.code.Full())
	case "v":
		if m.diagramResult == nil {
			m.dialog.Alert(MsgNoDiagram)
			return m, nil
		}
		m.diagram.Open(m.diagramResult.Text)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == FocusOptions {
		m.options, cmd = m.options.Update(msg)
	} else {
		m.code, cmd = m.code.Update(msg)
	}
	return m, cmd
}

// generateCode starts a code request for the current selection.
func (m AppModel) generateCode() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}

	// Any diagram requested for the previous code no longer applies.
	m.diagramReq = 0
	m.building = false
	m.diagramResult = nil

	var cmd tea.Cmd
	if m.client == nil || !m.client.Ready() {
		result := llm.MissingCredential()
		m.codeResult = &result
		m.code, cmd = m.code.Start(result.Text)
		return m, cmd
	}
	if m.selection.IsEmpty() {
		m.codeResult = nil
		m.code, cmd = m.code.Start(MsgSelectOption)
		return m, cmd
	}

	p, err := m.composer.Code(m.selection.Entries())
	if err != nil {
		m.log.Error("composing code prompt", zap.Error(err))
		m.dialog.Alert(err.Error())
		return m, nil
	}

	m.reqSeq++
	m.codeReq = m.reqSeq
	m.generating = true
	m.codeResult = nil
	m.code.SetGenerating(true)

	id := m.codeReq
	client := m.client
	ctx := m.ctx
	return m, func() tea.Msg {
		return codeResultMsg{id: id, result: client.GenerateCode(ctx, p)}
	}
}

// displayCircuit runs the diagram guards and asks for confirmation.
func (m AppModel) displayCircuit() (tea.Model, tea.Cmd) {
	if m.building {
		return m, nil
	}
	if m.generating || m.codeResult == nil || !m.codeResult.OK() {
		m.dialog.Alert(MsgGenerateFirst)
		return m, nil
	}
	if m.code.Revealing() {
		m.dialog.Alert(MsgWaitForCode)
		return m, nil
	}
	if m.confirmDiagram {
		m.dialog.Confirm(MsgConfirmDiagram)
		return m, nil
	}
	return m.requestDiagram()
}

func (m AppModel) requestDiagram() (tea.Model, tea.Cmd) {
	if m.codeResult == nil || !m.codeResult.OK() {
		return m, nil
	}

	p, err := m.composer.Diagram(m.codeResult.Text)
	if err != nil {
		m.log.Error("composing diagram prompt", zap.Error(err))
		m.dialog.Alert(err.Error())
		return m, nil
	}

	m.reqSeq++
	m.diagramReq = m.reqSeq
	m.building = true
	m.diagramResult = nil

	id := m.diagramReq
	client := m.client
	ctx := m.ctx
	return m, func() tea.Msg {
		return diagramResultMsg{id: id, result: client.GenerateDiagram(ctx, p)}
	}
}

func (m AppModel) canCopyCode() bool {
	return !m.generating && !m.code.Revealing() && m.code.Full() != ""
}

func (m AppModel) copy(text string) (tea.Model, tea.Cmd) {
	if err := m.clipboard.Write(text); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		m.dialog.Alert(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		return m, nil
	}
	m.copied = true
	m.copySeq++
	return m, clearCopiedAfter(m.copySeq, copiedDuration)
}

// layout distributes the window between the panels.
func (m *AppModel) layout() {
	// header, action bar, status line, footer
	bodyHeight := max(m.height-5, 5)

	optionsWidth := max(m.width*2/5, 30)
	if optionsWidth > m.width-20 {
		optionsWidth = max(m.width/2, 1)
	}
	codeWidth := max(m.width-optionsWidth, 1)

	m.code.SetSize(codeWidth, bodyHeight)
	m.options.SetSize(optionsWidth, bodyHeight)
	m.diagram.SetSize(m.width, m.height)
	m.dialog.SetSize(m.width, m.height)
}

// View renders the UI.
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch {
	case m.dialog.Active():
		return m.dialog.View()
	case m.showHelp:
		return m.renderHelp()
	case m.diagram.IsOpen():
		return m.diagram.View()
	}

	header := HeaderStyle.Render(title)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.code.View(m.focus == FocusCode),
		m.options.View(m.focus == FocusOptions),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderActions(),
		m.renderStatus(),
		FooterStyle.Render(Footer(m.now())),
	)
}

// Footer returns the copyright line for the given time.
func Footer(t time.Time) string {
	return fmt.Sprintf("© %d Quantum Vedas. All rights reserved.", t.Year())
}

func (m AppModel) renderActions() string {
	generate := "Generate Code"
	if m.generating {
		generate = "Generating..."
	}
	display := "Display Circuit"
	if m.building {
		display = "Building..."
	}

	buttons := []string{
		button("g", generate),
		button("d", display),
	}
	if m.canCopyCode() {
		buttons = append(buttons, button("y", "Copy Code"))
	}
	if m.diagramResult != nil {
		buttons = append(buttons, button("v", "View Circuit"))
	}
	return strings.Join(buttons, "")
}

func button(key, label string) string {
	return ButtonStyle.Render(ButtonKeyStyle.Render(key) + " " + label)
}

func (m AppModel) renderStatus() string {
	switch {
	case m.copied:
		return CopiedStyle.Render(MsgCopied)
	case m.generating:
		return LoadingStyle.Render("Generating code...")
	case m.building:
		return LoadingStyle.Render("Building circuit diagram...")
	}
	return HelpStyle.Render("tab: switch panel • ?: help • q: quit")
}

// renderHelp renders the help overlay.
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render(title) + "\n\n"

	helpText += sectionStyle.Render("Actions") + "\n"
	helpText += keyStyle.Render("g") + descStyle.Render("Generate code") + "\n"
	helpText += keyStyle.Render("d") + descStyle.Render("Display circuit diagram") + "\n"
	helpText += keyStyle.Render("y") + descStyle.Render("Copy code to clipboard") + "\n"
	helpText += keyStyle.Render("v") + descStyle.Render("Reopen last diagram") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Show all code (code panel)") + "\n"

	helpText += sectionStyle.Render("Options Panel") + "\n"
	helpText += keyStyle.Render("j/k ↑/↓") + descStyle.Render("Move between categories") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Open option list") + "\n"
	helpText += keyStyle.Render("h/l ←/→") + descStyle.Render("Cycle value") + "\n"
	helpText += keyStyle.Render("esc") + descStyle.Render("Close option list") + "\n"

	helpText += sectionStyle.Render("Global") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Switch panel focus") + "\n"
	helpText += keyStyle.Render("?") + descStyle.Render("Show this help") + "\n"
	helpText += keyStyle.Render("q") + descStyle.Render("Quit") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	helpBox := boxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
