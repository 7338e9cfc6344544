// Command heartcheck analyzes, renders, and reviews freehand heart drawings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms"
	"github.com/lanceyyyy/balentayms/internal/config"
	"github.com/lanceyyyy/balentayms/internal/logging"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "heartcheck",
	Short: "Recognize hand-drawn hearts",
	Long: `heartcheck judges freehand drawings against a reference heart outline.

A drawing is a JSON file of pointer strokes. The outline is split into twelve
sectors; a heart is complete once enough sectors are traced and the drawing
has a plausible overall shape.`,
	Version:       balentayms.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.GetConfigPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Development)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/heartcheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd, renderCmd, guideCmd, reviewCmd, watchCmd, drawCmd)
}

// newChecker builds the recognizer from the loaded configuration
func newChecker() *balentayms.HeartChecker {
	return balentayms.NewWithConfig(cfg.ShapeConfig(), cfg.RenderConfig())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
