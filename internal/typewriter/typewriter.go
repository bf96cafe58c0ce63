// Package typewriter reveals a finished text one character per tick.
package typewriter

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the delay between revealed characters.
const DefaultInterval = 20 * time.Millisecond

type state int

const (
	idle state = iota
	revealing
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances the reveal whose id it carries.
type TickMsg struct {
	ID int
}

// Model is a Bubble Tea component. Each Start takes a fresh id, so ticks
// scheduled for an earlier text are ignored and their chain ends.
type Model struct {
	interval time.Duration
	full     []rune
	shown    int
	id       int
	state    state
}

// New creates an idle typewriter.
func New(interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{interval: interval}
}

// Start begins revealing text from the first character, superseding any
// reveal in progress.
func (m Model) Start(text string) (Model, tea.Cmd) {
	m.full = []rune(text)
	m.shown = 0
	m.id = nextID()
	if len(m.full) == 0 {
		m.state = idle
		return m, nil
	}
	m.state = revealing
	return m, m.tick()
}

// Finish reveals the whole text immediately.
func (m Model) Finish() Model {
	m.shown = len(m.full)
	m.state = idle
	m.id = nextID()
	return m
}

// Update handles tick messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || m.state != revealing {
		return m, nil
	}

	m.shown++
	if m.shown >= len(m.full) {
		m.shown = len(m.full)
		m.state = idle
		return m, nil
	}
	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

// View returns the revealed prefix.
func (m Model) View() string {
	return string(m.full[:m.shown])
}

// Full returns the complete text being revealed.
func (m Model) Full() string {
	return string(m.full)
}

// Revealing reports whether characters are still being revealed.
func (m Model) Revealing() bool {
	return m.state == revealing
}
