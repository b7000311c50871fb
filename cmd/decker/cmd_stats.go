package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"decker/internal/deck"
)

// statsCmd summarizes a deck without presenting it.
var statsCmd = &cobra.Command{
	Use:   "stats <deck.md>",
	Short: "Show deck statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := deck.ParseFile(args[0])
	if err != nil {
		return err
	}

	words := 0
	notes := 0
	codeBlocks := 0
	for i := range d.Slides {
		s := &d.Slides[i]
		words += s.WordCount()
		if s.Notes != "" {
			notes++
		}
		codeBlocks += countCodeBlocks(s.Body)
	}

	title := d.Title()
	if title == "" {
		title = "(untitled)"
	}

	fmt.Printf("deck:        %s\n", title)
	fmt.Printf("slides:      %d\n", d.SlideCount())
	fmt.Printf("words:       %d\n", words)
	fmt.Printf("code blocks: %d\n", codeBlocks)
	fmt.Printf("with notes:  %d\n", notes)
	fmt.Printf("paginate:    %v\n", d.Front.Paginate)
	if problems := deck.Lint(d); len(problems) > 0 {
		fmt.Printf("lint:        %d problem(s), run `decker lint`\n", len(problems))
	}
	return nil
}

// countCodeBlocks counts opening fences in a slide body.
func countCodeBlocks(body string) int {
	count := 0
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			if !inFence {
				count++
			}
			inFence = !inFence
		}
	}
	return count
}
