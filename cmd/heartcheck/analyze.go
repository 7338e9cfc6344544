package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lanceyyyy/balentayms"
	"github.com/lanceyyyy/balentayms/internal/utils"
	"github.com/lanceyyyy/balentayms/pkg/capture"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

var (
	analyzeReplay    bool
	analyzeKeepGoing bool
	analyzeMarkdown  bool
	analyzeStyle     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [drawing.json|dir]...",
	Short: "Score drawings against the reference heart",
	Long: `Analyzes drawing files concurrently and prints one JSON line per file,
in the order the files were given. Directories are searched for *.json.

With --replay each drawing is fed stroke by stroke through a live session,
so a heart completed part-way is latched exactly as on the card.
With --markdown a styled table is printed instead of JSON lines.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		hc := newChecker()
		opts := []capture.SessionOption{
			capture.WithFrameInterval(cfg.Capture.FrameInterval),
			capture.WithLogger(logger),
		}
		return analyzeFiles(cmd.Context(), cmd.OutOrStdout(), hc, files, opts)
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeReplay, "replay", false, "replay strokes through a live session")
	analyzeCmd.Flags().BoolVar(&analyzeKeepGoing, "keep-going", false, "report unreadable files instead of stopping")
	analyzeCmd.Flags().BoolVar(&analyzeMarkdown, "markdown", false, "print a styled table instead of JSON lines")
	analyzeCmd.Flags().StringVar(&analyzeStyle, "style", "pink", "markdown style: pink, dark, light, ascii, notty")
}

// analysisLine is one line of analyze output
type analysisLine struct {
	File string `json:"file"`
	*types.DetectionResult
	Error string `json:"error,omitempty"`
}

func analyzeFiles(ctx context.Context, w io.Writer, hc *balentayms.HeartChecker, files []string, opts []capture.SessionOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lines := make([]analysisLine, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines[i].File = path

			d, err := capture.LoadDrawing(path)
			if err != nil {
				if analyzeKeepGoing {
					lines[i].Error = err.Error()
					return nil
				}
				return err
			}

			var result types.DetectionResult
			if analyzeReplay {
				result = capture.Replay(hc.NewSession(d.Width, d.Height, opts...), d)
			} else {
				result = hc.AnalyzeDrawing(d)
			}
			lines[i].DetectionResult = &result

			logger.Debug("analyzed drawing",
				zap.String("file", path),
				zap.Float64("coverage", result.CoveragePercentage),
				zap.Bool("complete", result.IsComplete))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if analyzeMarkdown {
		out, err := renderMarkdown(markdownReport(lines), analyzeStyle)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}

	enc := json.NewEncoder(w)
	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}
