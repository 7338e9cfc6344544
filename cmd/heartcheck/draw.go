package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/cmd/heartcheck/pad"
	"github.com/lanceyyyy/balentayms/pkg/capture"
)

var drawSave string

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a heart in the terminal with the mouse",
	Long: `Opens a full screen drawing pad. Trace the dotted heart with the left
mouse button; once it is recognized the card moves through its stages.
r clears the pad, q quits. With --save the heart is written as a drawing file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// The pad owns the terminal; keep log output off it.
		d, err := pad.Run(ctx, pad.Options{
			Matcher: newChecker().Matcher(),
			Logger:  zap.NewNop(),
		})
		if err != nil {
			return err
		}

		result := newChecker().AnalyzeDrawing(d)
		logger.Info("drawing finished",
			zap.Int("strokes", len(d.Strokes)),
			zap.Float64("coverage", result.CoveragePercentage),
			zap.Bool("complete", result.IsComplete))

		if drawSave != "" {
			if len(d.Strokes) == 0 {
				return capture.ErrNoStrokes
			}
			if err := capture.SaveDrawing(drawSave, d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), drawSave)
		}
		return nil
	},
}

func init() {
	drawCmd.Flags().StringVar(&drawSave, "save", "", "write the drawing to this file")
}
