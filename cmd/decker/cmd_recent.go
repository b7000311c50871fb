package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"decker/internal/history"
)

// recentCmd lists recently presented decks.
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently presented decks",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func runRecent(cmd *cobra.Command, args []string) error {
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled")
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Recent(cfg.History.Keep)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no decks presented yet")
		return nil
	}

	for _, s := range sessions {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%-19s  slide %d/%d  %s\n",
			s.UpdatedAt.Local().Format(time.DateTime), s.LastSlide+1, s.SlideCount, title)
		fmt.Printf("%19s  %s\n", "", s.DeckPath)
	}
	return nil
}
