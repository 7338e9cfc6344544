package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/pkg/capture"
	"github.com/lanceyyyy/balentayms/pkg/client"
	"github.com/lanceyyyy/balentayms/pkg/llamacpp"
	"github.com/lanceyyyy/balentayms/pkg/ollama"
	"github.com/lanceyyyy/balentayms/pkg/render"
	"github.com/lanceyyyy/balentayms/pkg/review"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

var (
	reviewBackend    string
	reviewURL        string
	reviewModel      string
	reviewTestVision bool
)

var reviewCmd = &cobra.Command{
	Use:   "review drawing.json",
	Short: "Ask a local vision model for a second opinion",
	Long: `Renders the drawing and asks a vision model (Ollama or a llama.cpp
server) whether it is a heart. The answer is advisory and is printed next
to the geometric result; it never changes it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := capture.LoadDrawing(args[0])
		if err != nil {
			return err
		}
		if len(d.Strokes) == 0 {
			return fmt.Errorf("%s: %w", args[0], capture.ErrNoStrokes)
		}

		backend, url, model := cfg.Review.Backend, cfg.Review.URL, cfg.Review.Model
		if reviewBackend != "" {
			backend = reviewBackend
		}
		if reviewURL != "" {
			url = reviewURL
		}
		if reviewModel != "" {
			model = reviewModel
		}

		vc, err := newVisionClient(backend, url)
		if err != nil {
			return err
		}

		hc := newChecker()
		img, err := hc.RenderDrawing(d)
		if err != nil {
			return err
		}
		imgB64, err := render.EncodeForModel(img, "png", cfg.Review.SendSize, cfg.Output.Quality)
		if err != nil {
			return fmt.Errorf("failed to encode drawing: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if cfg.Review.TimeoutS > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Review.TimeoutS)*time.Second)
			defer cancel()
		}

		reviewer := review.New(vc)
		reviewer.SetLogger(logger)

		if reviewTestVision {
			answer, err := reviewer.TestVision(ctx, model, imgB64)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		}

		verdict, err := reviewer.Review(ctx, model, imgB64)
		if err != nil {
			return err
		}
		result := hc.AnalyzeDrawing(d)
		logger.Info("review finished",
			zap.String("backend", backend),
			zap.String("model", model),
			zap.Bool("geometric_complete", result.IsComplete),
			zap.Bool("model_is_heart", verdict.IsHeart))

		out, err := json.MarshalIndent(struct {
			File   string                `json:"file"`
			Result types.DetectionResult `json:"result"`
			Review *types.ReviewResult   `json:"review"`
		}{args[0], result, verdict}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal review: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewBackend, "backend", "", "ollama or llamacpp (default from config)")
	reviewCmd.Flags().StringVar(&reviewURL, "url", "", "server URL (default from config)")
	reviewCmd.Flags().StringVar(&reviewModel, "model", "", "model name (default from config)")
	reviewCmd.Flags().BoolVar(&reviewTestVision, "test-vision", false, "only ask the model to describe the image")
}

func newVisionClient(backend, url string) (client.VisionClient, error) {
	switch backend {
	case "ollama":
		c, err := ollama.NewClient(url)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return c, nil
	case "llamacpp":
		c, err := llamacpp.NewClient(url)
		if err != nil {
			return nil, fmt.Errorf("failed to create llama.cpp client: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (use 'ollama' or 'llamacpp')", backend)
	}
}
