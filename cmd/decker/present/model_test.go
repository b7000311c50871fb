package present

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decker/internal/config"
	"decker/internal/deck"
)

const testDeck = `---
title: Test Deck
paginate: true
---

# One

first slide

---

# Two

<!-- notes: mention the demo -->
second slide

---

# Three
`

func newTestModel(t *testing.T) *Model {
	t.Helper()
	d, err := deck.Parse([]byte(testDeck))
	require.NoError(t, err)
	require.Equal(t, 3, d.SlideCount())

	cfg := config.DefaultConfig()
	cfg.Theme = "dark"

	m, err := New(d, cfg, Options{})
	require.NoError(t, err)

	// Presenters always get a size before the first key
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(*Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, keys ...string) *Model {
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(*Model)
	}
	return m
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0, m.Current())

	m = press(m, "right")
	assert.Equal(t, 1, m.Current())

	m = press(m, "right", "right", "right")
	assert.Equal(t, 2, m.Current(), "navigation clamps at the last slide")

	m = press(m, "left")
	assert.Equal(t, 1, m.Current())

	m = press(m, "g")
	assert.Equal(t, 0, m.Current())

	m = press(m, "left")
	assert.Equal(t, 0, m.Current(), "navigation clamps at the first slide")

	m = press(m, "G")
	assert.Equal(t, 2, m.Current())
}

func TestModel_GotoSlide(t *testing.T) {
	m := newTestModel(t)

	m = press(m, ":")
	assert.True(t, m.gotoMode)

	m = press(m, "2", "enter")
	assert.False(t, m.gotoMode)
	assert.Equal(t, 1, m.Current(), "goto is one-based")
}

func TestModel_GotoCancel(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "right", ":")
	m = press(m, "9", "esc")

	assert.False(t, m.gotoMode)
	assert.Equal(t, 1, m.Current(), "cancelled goto keeps position")
}

func TestModel_GotoOutOfRangeClamps(t *testing.T) {
	m := newTestModel(t)
	m = press(m, ":", "9", "enter")
	assert.Equal(t, 2, m.Current())
}

func TestModel_ReloadClampsPosition(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "G")
	require.Equal(t, 2, m.Current())

	smaller, err := deck.Parse([]byte("# Only\n"))
	require.NoError(t, err)

	updated, _ := m.Update(deckReloadedMsg{deck: smaller})
	m = updated.(*Model)

	assert.Equal(t, 0, m.Current())
	assert.Equal(t, 1, m.Deck().SlideCount())
}

func TestModel_NotesToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "right", "n")

	assert.True(t, m.showNote)
	assert.Contains(t, m.View(), "mention the demo")

	m = press(m, "n")
	assert.False(t, m.showNote)
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	out := m.View()

	assert.Contains(t, out, "Test Deck")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "One", "slide content renders")
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_StartSlideClamped(t *testing.T) {
	d, err := deck.Parse([]byte(testDeck))
	require.NoError(t, err)

	m, err := New(d, config.DefaultConfig(), Options{StartSlide: 99})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Current())

	m, err = New(d, config.DefaultConfig(), Options{StartSlide: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Current())
}

func TestModel_FooterShowsNotesHint(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "right")

	footer := m.renderFooter()
	if !strings.Contains(footer, "notes") {
		t.Errorf("footer should hint at notes on slide 2: %q", footer)
	}
}
