package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/quantumvedas/yajur/internal/catalog"
	"github.com/quantumvedas/yajur/internal/selection"
)

// OptionSelectedMsg reports a choice made in the options panel.
type OptionSelectedMsg struct {
	Category string
	Value    string
	Err      error
}

// OptionsModel lists every catalog category like a column of dropdowns.
// Enter opens the focused category's option list.
type OptionsModel struct {
	catalog   catalog.Catalog
	selection *selection.State

	cursor int
	open   bool
	pick   int
	offset int // first visible line

	width  int
	height int
}

// NewOptionsModel creates the options panel.
func NewOptionsModel(c catalog.Catalog, sel *selection.State) OptionsModel {
	return OptionsModel{
		catalog:   c,
		selection: sel,
	}
}

// SetSize updates the view dimensions.
func (m *OptionsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustScroll()
}

// PickerOpen reports whether an option list is expanded.
func (m OptionsModel) PickerOpen() bool {
	return m.open
}

// Cursor returns the index of the focused category.
func (m OptionsModel) Cursor() int {
	return m.cursor
}

func (m OptionsModel) current() catalog.Category {
	return m.catalog.Categories[m.cursor]
}

// visibleHeight is the number of list lines that fit between the title
// and the help line.
func (m OptionsModel) visibleHeight() int {
	h := m.height - 6 // border, title, help
	if h < 3 {
		h = 3
	}
	return h
}

// lineCount is the number of list lines, including an open picker.
func (m OptionsModel) lineCount() int {
	n := m.catalog.Len()
	if m.open {
		n += len(m.current().Options)
	}
	return n
}

// focusLine is the list line holding the cursor or the picked option.
func (m OptionsModel) focusLine() int {
	if m.open {
		return m.cursor + 1 + m.pick
	}
	return m.cursor
}

func (m *OptionsModel) adjustScroll() {
	if m.catalog.Len() == 0 {
		return
	}
	visible := m.visibleHeight()
	focus := m.focusLine()

	// Scroll up if focus is above the window
	if focus < m.offset {
		m.offset = focus
	}
	// Scroll down if focus is below the window
	if focus >= m.offset+visible {
		m.offset = focus - visible + 1
	}
	// Don't leave empty space after the last line
	if last := m.lineCount() - visible; m.offset > last {
		m.offset = max(last, 0)
	}
}

// Update handles messages.
func (m OptionsModel) Update(msg tea.Msg) (OptionsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.catalog.Len() == 0 {
		return m, nil
	}

	m, cmd := m.handleKey(key)
	m.adjustScroll()
	return m, cmd
}

func (m OptionsModel) handleKey(key tea.KeyMsg) (OptionsModel, tea.Cmd) {
	if m.open {
		opts := m.current().Options
		switch key.String() {
		case "j", "down":
			if m.pick < len(opts)-1 {
				m.pick++
			}
		case "k", "up":
			if m.pick > 0 {
				m.pick--
			}
		case "enter", " ":
			m.open = false
			return m, m.choose(opts[m.pick])
		case "esc":
			m.open = false
		}
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		if m.cursor < m.catalog.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ":
		m.open = true
		m.pick = m.selectedIndex()
	case "l", "right":
		opts := m.current().Options
		return m, m.choose(opts[(m.selectedIndex()+1)%len(opts)])
	case "h", "left":
		opts := m.current().Options
		i := m.selectedIndex() - 1
		if i < 0 {
			i = len(opts) - 1
		}
		return m, m.choose(opts[i])
	}
	return m, nil
}

// selectedIndex is the position of the current value, or 0 when unset.
func (m OptionsModel) selectedIndex() int {
	cat := m.current()
	v, ok := m.selection.Get(cat.Name)
	if !ok {
		return 0
	}
	for i, o := range cat.Options {
		if o == v {
			return i
		}
	}
	return 0
}

func (m OptionsModel) choose(value string) tea.Cmd {
	category := m.current().Name
	err := m.selection.Select(category, value)
	return func() tea.Msg {
		return OptionSelectedMsg{Category: category, Value: value, Err: err}
	}
}

// View renders the options panel.
func (m OptionsModel) View(focused bool) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Options"))
	b.WriteString("\n")

	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}

	var lines []string
	for i, cat := range m.catalog.Categories {
		if i == m.cursor {
			lines = append(lines, cursorStyle.Render(runewidth.FillRight(m.plainRow(cat, inner), inner)))
		} else {
			lines = append(lines, m.styledRow(cat, inner))
		}

		if m.open && i == m.cursor {
			for j, opt := range cat.Options {
				text := runewidth.Truncate(opt, inner-2, "…")
				if j == m.pick {
					lines = append(lines, optionActiveStyle.Render("› "+text))
				} else {
					lines = append(lines, optionStyle.Render("  "+text))
				}
			}
		}
	}

	start := min(m.offset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.open {
		b.WriteString(helpStyle.Render("j/k: move • enter: choose • esc: close"))
	} else {
		b.WriteString(helpStyle.Render("enter: open • h/l: cycle"))
	}

	style := panelStyle
	if focused {
		style = panelFocusedStyle
	}
	return style.Width(max(m.width-2, 1)).Render(b.String())
}

func (m OptionsModel) marker(cat catalog.Category) string {
	if m.open && cat.Name == m.current().Name {
		return "▴ "
	}
	return "▾ "
}

func (m OptionsModel) plainRow(cat catalog.Category, width int) string {
	v, ok := m.selection.Get(cat.Name)
	if !ok {
		return runewidth.Truncate(m.marker(cat)+cat.Name, width, "…")
	}
	return runewidth.Truncate(m.marker(cat)+cat.Name+": "+v, width, "…")
}

func (m OptionsModel) styledRow(cat catalog.Category, width int) string {
	v, ok := m.selection.Get(cat.Name)
	if !ok {
		return m.marker(cat) + placeholderStyle.Render(runewidth.Truncate(cat.Name, width-2, "…"))
	}

	label := cat.Name + ": "
	value := runewidth.Truncate(v, width-2-runewidth.StringWidth(label), "…")
	return m.marker(cat) + labelStyle.Render(label) + valueStyle.Render(value)
}
