package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"decker/internal/config"
	"decker/internal/logging"
)

const version = "0.3.0"

var (
	// Global flags
	cfgPath   string
	themeFlag string
	verbose   bool
	noHistory bool

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command. Running decker with a deck file
// starts the presenter.
var rootCmd = &cobra.Command{
	Use:   "decker [deck.md]",
	Short: "decker - Markdown slide decks in the terminal",
	Long: `decker presents Markdown slide decks in the terminal.

A deck is a Markdown file with an optional yaml front-matter block
(theme, paginate, background, title, author, footer) and slides
separated by --- lines. Fenced code blocks may contain --- without
splitting a slide.

Run with a deck file to present it, or try the built-in demo:

  decker talk.md
  decker demo`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		if err := logging.Initialize(cfg.Logging.DebugMode, cfg.Logging.Level); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runPresent(args[0])
	},
}

// loadConfig loads the config file and layers command-line flags on
// top of file and environment values.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if themeFlag != "" {
		c.Theme = themeFlag
	}
	if noHistory {
		c.History.Enabled = false
	}
	if verbose {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Color theme: auto, dark or light")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record this session in history")

	rootCmd.Flags().IntVar(&startSlide, "start", 0, "Slide to open on (one-based, 0 resumes from history)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable live reload")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the decker version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("decker %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
