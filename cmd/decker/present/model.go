// Package present provides the interactive terminal presenter for
// decker slide decks.
package present

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"decker/cmd/decker/ui"
	"decker/internal/config"
	"decker/internal/deck"
	"decker/internal/history"
	"decker/internal/logging"
	"decker/internal/render"
	"decker/internal/watch"
)

// Options configures the presenter.
type Options struct {
	// StartSlide is the zero-based slide to open on.
	StartSlide int

	// Watcher, when set, feeds live reloads into the presenter. The
	// presenter owns Stop.
	Watcher *watch.DeckWatcher

	// History, when set, records the final position on quit. The
	// caller owns Close.
	History *history.Store
}

// keyMap defines the presenter key bindings.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	First  key.Binding
	Last   key.Binding
	Goto   key.Binding
	Notes  key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "j", "pgdown", " ", "enter"),
			key.WithHelp("→/space", "next slide"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "k", "pgup"),
			key.WithHelp("←", "previous slide"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first slide"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last slide"),
		),
		Goto: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to slide"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "speaker notes"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload deck"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Goto, k.Notes, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.Goto, k.Notes, k.Reload},
		{k.Help, k.Quit},
	}
}

// Model is the bubbletea model for the presenter.
type Model struct {
	deck     *deck.Deck
	cfg      *config.Config
	styles   ui.Styles
	renderer *render.Renderer
	keys     keyMap

	viewport  viewport.Model
	gotoInput textinput.Model
	help      help.Model

	watcher *watch.DeckWatcher
	hist    *history.Store

	current  int
	width    int
	height   int
	ready    bool
	showNote bool
	gotoMode bool
	err      error
}

// New builds a presenter Model for the given deck.
func New(d *deck.Deck, cfg *config.Config, opts Options) (*Model, error) {
	theme := ui.ForName(cfg.Theme)

	rendererTheme := "light"
	if theme.IsDark {
		rendererTheme = "dark"
	}
	r, err := render.New(rendererTheme, 80)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	input := textinput.New()
	input.Prompt = "slide: "
	input.CharLimit = 4
	input.Width = 8

	start := opts.StartSlide
	if start < 0 {
		start = 0
	}
	if start >= d.SlideCount() {
		start = d.SlideCount() - 1
	}

	return &Model{
		deck:      d,
		cfg:       cfg,
		styles:    ui.NewStyles(theme),
		renderer:  r,
		keys:      defaultKeyMap(),
		gotoInput: input,
		help:      help.New(),
		watcher:   opts.Watcher,
		hist:      opts.History,
		current:   start,
	}, nil
}

// Current returns the zero-based index of the slide on screen.
func (m *Model) Current() int { return m.current }

// Deck returns the deck currently on screen, which may be newer than
// the one the presenter started with after a live reload.
func (m *Model) Deck() *deck.Deck { return m.deck }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	logging.UI("presenter started: %s (%d slides)", m.deck.Title(), m.deck.SlideCount())
	if m.watcher != nil {
		return listenForReload(m.watcher)
	}
	return nil
}

// Run presents the deck, blocking until the user quits, then records
// the final position in history.
func Run(m *Model) error {
	if m.watcher != nil {
		defer m.watcher.Stop()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("presenter: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return nil
	}
	if fm.hist != nil && fm.deck.Path != "" {
		if err := fm.hist.Record(fm.deck.Path, fm.deck.Title(), fm.current, fm.deck.SlideCount()); err != nil {
			logging.Get(logging.CategoryHistory).Warn("recording session: %v", err)
		}
	}
	return nil
}
