package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"decker/internal/deck"
)

// lintCmd checks deck structure without presenting.
var lintCmd = &cobra.Command{
	Use:   "lint <deck.md> [more decks...]",
	Short: "Check deck structure",
	Long: `Checks decks for structural problems: empty slides, unclosed code
fences, unknown front-matter keys, duplicate slide titles, missing
titles and code blocks too long for one screen.

Exits non-zero when any deck has an error-severity problem.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	var errorCount int

	for _, path := range args {
		d, err := deck.ParseFile(path)
		if err != nil {
			return err
		}

		problems := deck.Lint(d)
		logger.Debug("linted deck",
			zap.String("path", path),
			zap.Int("slides", d.SlideCount()),
			zap.Int("problems", len(problems)))

		if len(problems) == 0 {
			fmt.Printf("%s: ok (%d slides)\n", path, d.SlideCount())
			continue
		}
		for _, p := range problems {
			fmt.Printf("%s: %s\n", path, p)
			if p.Severity == deck.SeverityError {
				errorCount++
			}
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d error(s) found", errorCount)
	}
	return nil
}
