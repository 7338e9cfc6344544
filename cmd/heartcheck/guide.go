package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lanceyyyy/balentayms/pkg/render"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

var (
	guideWidth  float64
	guideHeight float64
	guideOut    string
	guidePoints bool
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Print the tracing guide for a canvas size",
	Long: `Prints the dotted heart guide as a standalone SVG document, or with
--points the reference points and their sectors as JSON.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, h := guideWidth, guideHeight
		if w <= 0 {
			w = cfg.Capture.Width
		}
		if h <= 0 {
			h = cfg.Capture.Height
		}

		var data []byte
		if guidePoints {
			ref := newChecker().Matcher().Reference(w, h)
			type refPoint struct {
				types.Point
				Sector int `json:"sector"`
			}
			points := make([]refPoint, len(ref.Points))
			for i, p := range ref.Points {
				points[i] = refPoint{Point: p, Sector: ref.Sectors[i]}
			}
			var err error
			data, err = json.MarshalIndent(map[string]any{
				"width":          w,
				"height":         h,
				"centroid":       ref.Centroid,
				"boundingRadius": ref.BoundingRadius,
				"proximity":      ref.Proximity,
				"points":         points,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal guide: %w", err)
			}
			data = append(data, '\n')
		} else {
			data = []byte(render.GuideSVG(w, h, cfg.Render.Guide))
		}

		if guideOut == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.MkdirAll(filepath.Dir(guideOut), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(guideOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write guide: %w", err)
		}
		return nil
	},
}

func init() {
	guideCmd.Flags().Float64Var(&guideWidth, "width", 0, "canvas width in pixels (default from config)")
	guideCmd.Flags().Float64Var(&guideHeight, "height", 0, "canvas height in pixels (default from config)")
	guideCmd.Flags().StringVarP(&guideOut, "out", "o", "", "write to a file instead of stdout")
	guideCmd.Flags().BoolVar(&guidePoints, "points", false, "print reference points as JSON")
}
