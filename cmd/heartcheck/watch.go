package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/internal/utils"
	"github.com/lanceyyyy/balentayms/internal/watch"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

var watchRender bool

var watchCmd = &cobra.Command{
	Use:   "watch drawing.json",
	Short: "Re-analyze a drawing whenever the file changes",
	Long: `Watches a drawing file and prints a JSON result line each time it is
saved. With --render the image is re-rendered next to the configured output
directory as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hc := newChecker()
		enc := json.NewEncoder(cmd.OutOrStdout())
		format := cfg.Output.Format

		handler := func(path string, d types.Drawing) {
			result := hc.AnalyzeDrawing(d)
			if err := enc.Encode(analysisLine{File: path, DetectionResult: &result}); err != nil {
				logger.Warn("failed to write result", zap.Error(err))
			}
			if !watchRender {
				return
			}
			if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
				logger.Warn("failed to create output directory", zap.Error(err))
				return
			}
			out := utils.GenerateOutputFilename(path, cfg.Output.OutputDir, cfg.Output.Suffix, format)
			if err := renderToFile(hc, d, out, format); err != nil {
				logger.Warn("render failed", zap.String("output", out), zap.Error(err))
			}
		}

		w, err := watch.New(args[0], handler, logger)
		if err != nil {
			return err
		}
		if cfg.Capture.DebounceMS > 0 {
			w.SetDebounce(time.Duration(cfg.Capture.DebounceMS) * time.Millisecond)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("watching drawing", zap.String("path", args[0]))
		if err := w.Run(ctx); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
		stats := w.Stats()
		logger.Info("watch stopped", zap.Int("reloads", stats.Reloads), zap.Int("errors", stats.Errors))
		return nil
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchRender, "render", false, "re-render the image on every change")
}
