package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms"
	"github.com/lanceyyyy/balentayms/internal/utils"
	"github.com/lanceyyyy/balentayms/pkg/capture"
	"github.com/lanceyyyy/balentayms/pkg/render"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

var (
	renderOut      string
	renderFormat   string
	renderCentroid bool
	renderBg       string
)

var renderCmd = &cobra.Command{
	Use:   "render drawing.json...",
	Short: "Render drawings over the tracing guide",
	Long: `Paints each drawing over the dotted guide with covered sectors
highlighted and writes it as png, jpg or webp.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		if renderOut != "" && len(files) > 1 {
			return fmt.Errorf("--out needs a single input, got %d", len(files))
		}

		format := renderFormat
		if format == "" {
			format = cfg.Output.Format
		}
		if !utils.IsImageFormat(format) {
			return fmt.Errorf("unsupported output format: %s", format)
		}

		rc := cfg.RenderConfig()
		if cmd.Flags().Changed("centroid") {
			rc.ShowCentroid = renderCentroid
		}
		if renderBg != "" {
			rc.BackgroundPath = renderBg
		}
		hc := balentayms.NewWithConfig(cfg.ShapeConfig(), rc)

		for _, path := range files {
			d, err := capture.LoadDrawing(path)
			if err != nil {
				return err
			}
			out := renderOut
			if out == "" {
				if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				out = utils.GenerateOutputFilename(path, cfg.Output.OutputDir, cfg.Output.Suffix, format)
			}
			if err := renderToFile(hc, d, out, format); err != nil {
				return err
			}
			logger.Info("rendered drawing", zap.String("input", path), zap.String("output", out))
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (single input only)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "png|jpg|webp (default from config)")
	renderCmd.Flags().BoolVar(&renderCentroid, "centroid", false, "mark the reference centroid")
	renderCmd.Flags().StringVar(&renderBg, "background", "", "background image filled to the canvas")
}

func renderToFile(hc *balentayms.HeartChecker, d types.Drawing, out, format string) error {
	img, err := hc.RenderDrawing(d)
	if err != nil {
		return err
	}
	if err := render.SaveImage(img, out, format, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
		return fmt.Errorf("failed to save %s: %w", out, err)
	}
	return nil
}
