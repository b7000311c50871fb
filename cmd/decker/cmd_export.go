package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"decker/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd renders decks to standalone files.
var exportCmd = &cobra.Command{
	Use:   "export <deck.md> [more decks...]",
	Short: "Export decks to HTML or normalized Markdown",
	Long: `Exports each deck to the output directory. HTML export produces a
standalone page with one section per slide; md export rewrites the
deck in normalized form (front matter, slides, delimiters).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "html", "Output format: html or md")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	outputs, err := export.Files(cmd.Context(), args, exportOut, format)
	if err != nil {
		return err
	}

	for _, out := range outputs {
		fmt.Println(out)
	}
	logger.Info("export complete", zap.Int("decks", len(outputs)), zap.String("format", string(format)))
	return nil
}
