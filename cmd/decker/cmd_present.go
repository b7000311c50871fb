package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"decker/cmd/decker/present"
	"decker/internal/deck"
	"decker/internal/history"
	"decker/internal/logging"
	"decker/internal/watch"
)

var (
	startSlide int
	noWatch    bool
)

// runPresent loads a deck and starts the presenter, wiring in live
// reload and session history per config.
func runPresent(path string) error {
	d, err := deck.ParseFile(path)
	if err != nil {
		return err
	}
	logging.Boot("presenting %s: %d slides", path, d.SlideCount())

	opts := present.Options{}

	hist := openHistory()
	if hist != nil {
		defer hist.Close()
		opts.History = hist
	}

	// --start wins over history; both are clamped by the presenter
	switch {
	case startSlide > 0:
		opts.StartSlide = startSlide - 1
	case hist != nil:
		resume, err := hist.Resume(path, d.SlideCount())
		if err != nil {
			logging.Get(logging.CategoryHistory).Warn("resume lookup failed: %v", err)
		} else {
			opts.StartSlide = resume
		}
	}

	if cfg.Watch.Enabled && !noWatch {
		debounce, err := cfg.WatchDebounce()
		if err != nil {
			return err
		}
		w, err := watch.New(path, debounce)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := w.Start(context.Background()); err != nil {
			return err
		}
		opts.Watcher = w
	}

	m, err := present.New(d, cfg, opts)
	if err != nil {
		return err
	}
	return present.Run(m)
}

// openHistory opens the history store, returning nil (with a warning)
// when history is disabled or unavailable; presenting must not fail
// because the history database cannot be opened.
func openHistory() *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		logger.Warn("history disabled", zap.Error(err))
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("history disabled", zap.Error(err))
		return nil
	}
	return store
}
