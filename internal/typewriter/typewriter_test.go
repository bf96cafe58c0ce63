package typewriter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealsOneCharacterPerTick(t *testing.T) {
	m, cmd := New(time.Millisecond).Start("CODE_X")
	require.NotNil(t, cmd)
	assert.Equal(t, revealing, m.state)
	assert.Equal(t, "", m.View())

	for i := 1; i <= 6; i++ {
		m, cmd = m.Update(TickMsg{ID: m.id})
		assert.Equal(t, "CODE_X"[:i], m.View())
	}

	assert.Equal(t, "CODE_X", m.View())
	assert.Equal(t, idle, m.state)
	assert.Nil(t, cmd, "no tick should be scheduled after the last character")
}

func TestTickCommandCarriesID(t *testing.T) {
	m, cmd := New(time.Millisecond).Start("ab")
	msg := cmd()
	tick, ok := msg.(TickMsg)
	require.True(t, ok)
	assert.Equal(t, m.id, tick.ID)
}

func TestRestartDiscardsOldTicks(t *testing.T) {
	m, _ := New(time.Millisecond).Start("first text")
	m, _ = m.Update(TickMsg{ID: m.id})
	m, _ = m.Update(TickMsg{ID: m.id})
	oldID := m.id

	m, cmd := m.Start("xyz")
	require.NotNil(t, cmd)
	assert.NotEqual(t, oldID, m.id)
	assert.Equal(t, "", m.View())

	// A tick from the superseded reveal changes nothing and schedules nothing.
	m, cmd = m.Update(TickMsg{ID: oldID})
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.View())

	m, _ = m.Update(TickMsg{ID: m.id})
	m, _ = m.Update(TickMsg{ID: oldID})
	m, _ = m.Update(TickMsg{ID: m.id})
	m, cmd = m.Update(TickMsg{ID: m.id})
	assert.Equal(t, "xyz", m.View())
	assert.False(t, m.Revealing())
	assert.Nil(t, cmd)
}

func TestRevealsRunesNotBytes(t *testing.T) {
	m, _ := New(time.Millisecond).Start("H─●")
	m, _ = m.Update(TickMsg{ID: m.id})
	m, _ = m.Update(TickMsg{ID: m.id})
	assert.Equal(t, "H─", m.View())
	m, _ = m.Update(TickMsg{ID: m.id})
	assert.Equal(t, "H─●", m.View())
	assert.Equal(t, idle, m.state)
}

func TestEmptyTextStaysIdle(t *testing.T) {
	m, cmd := New(0).Start("")
	assert.Nil(t, cmd)
	assert.Equal(t, idle, m.state)
	assert.Equal(t, "", m.View())
}

func TestFinishRevealsEverything(t *testing.T) {
	m, _ := New(time.Millisecond).Start("circuit")
	id := m.id
	m = m.Finish()
	assert.Equal(t, "circuit", m.View())
	assert.Equal(t, "circuit", m.Full())
	assert.False(t, m.Revealing())

	m, cmd := m.Update(TickMsg{ID: id})
	assert.Nil(t, cmd)
	assert.Equal(t, "circuit", m.View())
}
