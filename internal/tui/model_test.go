package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rabbitcare/internal/game"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModelForTest(t *testing.T) Model {
	t.Helper()
	eng := game.NewEngine(game.Options{})
	return NewModel(eng, nil)
}

func TestFeedKeyDispatchesAction(t *testing.T) {
	m := newModelForTest(t)

	next, _ := m.Update(key("f"))
	m = next.(Model)

	assert.Equal(t, game.MaxCareLevel, m.st.HungerLevel)
	assert.Equal(t, 5, m.st.Hearts)
	assert.Contains(t, m.message, "+5 hearts")
}

func TestScoopWithNothingToScoop(t *testing.T) {
	m := newModelForTest(t)

	next, _ := m.Update(key("s"))
	m = next.(Model)

	assert.Equal(t, 0, m.st.Hearts)
	assert.Contains(t, m.message, "Nothing to scoop")
}

func TestGiftKeyReportsAmount(t *testing.T) {
	m := newModelForTest(t)

	next, _ := m.Update(key("g"))
	m = next.(Model)
	require.Contains(t, m.message, "hearts")

	// Claiming again inside the cooldown hits the empty-box message.
	next, _ = m.Update(key("g"))
	m = next.(Model)
	assert.Contains(t, m.message, "come back tomorrow")
}

func TestTickRefreshesSnapshot(t *testing.T) {
	eng := game.NewEngine(game.Options{})
	m := NewModel(eng, nil)

	// Mutate the engine behind the model's back, as the decay ticker does.
	eng.Feed()

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 5, m.st.Hearts)
}

func TestQuitKey(t *testing.T) {
	m := newModelForTest(t)

	next, cmd := m.Update(key("q"))
	m = next.(Model)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Equal(t, "See you soon!\n", m.View())
}

func TestViewShowsStats(t *testing.T) {
	m := newModelForTest(t)

	view := m.View()
	assert.True(t, strings.Contains(view, "Hearts: 0"))
	assert.True(t, strings.Contains(view, "Level: 1"))
	assert.True(t, strings.Contains(view, "[f]eed"))
}
