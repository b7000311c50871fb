package main

import (
	"github.com/spf13/cobra"

	"decker/cmd/decker/present"
	"decker/internal/assets"
	"decker/internal/deck"
)

// demoCmd presents the built-in deck on writing non-brittle unit
// tests. It has no file on disk, so live reload and history resume do
// not apply.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Present the built-in demo deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.Parse(assets.UnitTestingDeck)
		if err != nil {
			return err
		}
		m, err := present.New(d, cfg, present.Options{})
		if err != nil {
			return err
		}
		return present.Run(m)
	},
}
