package present

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"decker/internal/deck"
	"decker/internal/logging"
	"decker/internal/watch"
)

// deckReloadedMsg carries a freshly parsed deck from the watcher or a
// manual reload.
type deckReloadedMsg struct {
	deck *deck.Deck
}

// reloadFailedMsg reports a manual reload that could not parse.
type reloadFailedMsg struct {
	err error
}

// listenForReload waits for the next watcher update.
func listenForReload(w *watch.DeckWatcher) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-w.Updates()
		if !ok {
			return nil
		}
		return deckReloadedMsg{deck: d}
	}
}

// reloadDeck re-parses the deck file on demand.
func reloadDeck(path string) tea.Cmd {
	return func() tea.Msg {
		d, err := deck.ParseFile(path)
		if err != nil {
			return reloadFailedMsg{err: err}
		}
		return deckReloadedMsg{deck: d}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case deckReloadedMsg:
		return m.handleReload(msg.deck)

	case reloadFailedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.gotoMode {
			return m.handleGotoKey(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentWidth := msg.Width - 4
	if limit := m.cfg.Render.MaxWidth; limit > 0 && contentWidth > limit {
		contentWidth = limit
	}
	if contentWidth < 10 {
		contentWidth = 10
	}
	if err := m.renderer.Resize(contentWidth); err != nil {
		m.err = err
	}

	contentHeight := msg.Height - m.chromeHeight()
	if contentHeight < 1 {
		contentHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = contentHeight
	}

	m.setSlide(m.current)
	return m, nil
}

func (m *Model) handleReload(d *deck.Deck) (tea.Model, tea.Cmd) {
	d.Path = m.deck.Path
	m.deck = d
	m.err = nil

	// Clamp: the edited deck may have fewer slides
	if m.current >= d.SlideCount() {
		m.current = d.SlideCount() - 1
	}
	m.setSlide(m.current)
	logging.UI("deck reloaded: %d slides", d.SlideCount())

	if m.watcher != nil {
		return m, listenForReload(m.watcher)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.setSlide(m.current + 1)

	case key.Matches(msg, m.keys.Prev):
		m.setSlide(m.current - 1)

	case key.Matches(msg, m.keys.First):
		m.setSlide(0)

	case key.Matches(msg, m.keys.Last):
		m.setSlide(m.deck.SlideCount() - 1)

	case key.Matches(msg, m.keys.Goto):
		m.gotoMode = true
		m.gotoInput.SetValue("")
		return m, m.gotoInput.Focus()

	case key.Matches(msg, m.keys.Notes):
		m.showNote = !m.showNote
		m.refreshChrome()

	case key.Matches(msg, m.keys.Reload):
		if m.deck.Path != "" {
			return m, reloadDeck(m.deck.Path)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refreshChrome()

	default:
		// Unmatched keys scroll the viewport for tall slides
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.gotoMode = false
		m.gotoInput.Blur()
		raw := strings.TrimSpace(m.gotoInput.Value())
		if n, err := strconv.Atoi(raw); err == nil {
			m.setSlide(n - 1) // user-facing numbers are one-based
		}
		return m, nil

	case "esc", "ctrl+c":
		m.gotoMode = false
		m.gotoInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// setSlide moves to slide i, clamped to the deck, and refreshes the
// viewport content.
func (m *Model) setSlide(i int) {
	if i < 0 {
		i = 0
	}
	if i >= m.deck.SlideCount() {
		i = m.deck.SlideCount() - 1
	}
	m.current = i

	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderer.Slide(&m.deck.Slides[i]))
	m.viewport.GotoTop()
	logging.UIDebug("slide %d/%d", i+1, m.deck.SlideCount())
}

// refreshChrome resizes the viewport after footer furniture (notes,
// expanded help) changes height.
func (m *Model) refreshChrome() {
	if !m.ready {
		return
	}
	contentHeight := m.height - m.chromeHeight()
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.viewport.Height = contentHeight
}

// chromeHeight is the vertical space taken by everything that is not
// the slide: header, divider, footer, and optional panels.
func (m *Model) chromeHeight() int {
	h := 4 // header + divider + footer + spacing
	if m.showNote {
		h += 4
	}
	if m.help.ShowAll {
		h += 3
	}
	return h
}
