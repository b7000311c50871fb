// Package watch reloads a deck when its source file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"decker/internal/deck"
	"decker/internal/logging"
)

// DefaultDebounce batches rapid editor saves into one reload.
const DefaultDebounce = 250 * time.Millisecond

// DeckWatcher watches a deck file and re-parses it after changes settle.
// It watches the parent directory rather than the file itself because
// most editors replace files on save, which drops a direct watch.
type DeckWatcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	path        string // Absolute path to the deck file
	dir         string // Parent directory under watch
	debounceMap map[string]time.Time
	debounceDur time.Duration
	updates     chan *deck.Deck
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// Stats tracks watcher activity for debugging and tests.
type Stats struct {
	Events        int
	Reloads       int
	ParseFailures int
	LastEventTime time.Time
	LastEventOp   string
}

// New creates a DeckWatcher for the given deck file.
func New(path string, debounce time.Duration) (*DeckWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &DeckWatcher{
		watcher:     watcher,
		path:        abs,
		dir:         filepath.Dir(abs),
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		updates:     make(chan *deck.Deck, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Updates delivers re-parsed decks. The channel has capacity one and
// stale decks are dropped, so receivers always see the newest parse.
func (w *DeckWatcher) Updates() <-chan *deck.Deck {
	return w.updates
}

// Start begins watching. Non-blocking; the event loop runs in a
// goroutine until Stop or context cancellation.
func (w *DeckWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logging.Watcher("watching %s for changes to %s", w.dir, filepath.Base(w.path))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *DeckWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatcher).Error("closing watcher: %v", err)
	}
	logging.Watcher("stopped")
}

// IsWatching reports whether the event loop is running.
func (w *DeckWatcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// GetStats returns a snapshot of watcher activity.
func (w *DeckWatcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *DeckWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounceTicker := time.NewTicker(50 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Watcher("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatcher).Error("watch error: %v", err)

		case <-debounceTicker.C:
			w.processDebounced()
		}
	}
}

func (w *DeckWatcher) handleEvent(event fsnotify.Event) {
	// Only the deck file itself matters
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	logging.WatcherDebug("%s event for %s", event.Op, event.Name)

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventOp = event.Op.String()
	w.debounceMap[w.path] = time.Now()
	w.mu.Unlock()
}

// processDebounced reloads the deck once events have settled past the
// debounce window.
func (w *DeckWatcher) processDebounced() {
	w.mu.Lock()
	now := time.Now()
	pending := false
	if at, ok := w.debounceMap[w.path]; ok && now.Sub(at) >= w.debounceDur {
		delete(w.debounceMap, w.path)
		pending = true
	}
	w.mu.Unlock()

	if !pending {
		return
	}
	w.reload()
}

func (w *DeckWatcher) reload() {
	d, err := deck.ParseFile(w.path)
	if err != nil {
		// Keep the last good deck on screen; the editor may have
		// saved mid-write.
		logging.Get(logging.CategoryWatcher).Warn("reload failed, keeping previous deck: %v", err)
		w.mu.Lock()
		w.stats.ParseFailures++
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.stats.Reloads++
	w.mu.Unlock()

	// Drop a stale update so the newest parse always lands
	select {
	case <-w.updates:
	default:
	}
	w.updates <- d
	logging.Watcher("reloaded %s: %d slides", filepath.Base(w.path), d.SlideCount())
}
