// Package balentayms recognizes hand-drawn hearts.
//
// A drawing is judged against a reference heart outline centered on the
// canvas. The outline is split into twelve angular sectors; a sector counts as
// covered when some drawn point lands close enough to one of its reference
// points. A heart is complete when at least 70% of the sectors are covered
// and the drawing passes a few sanity checks on its overall shape.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/lanceyyyy/balentayms"
//		"github.com/lanceyyyy/balentayms/pkg/capture"
//	)
//
//	func main() {
//		hc := balentayms.New()
//
//		d, err := capture.LoadDrawing("heart.json")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		result := hc.AnalyzeDrawing(d)
//		fmt.Printf("coverage %.0f%% complete=%v\n", result.CoveragePercentage, result.IsComplete)
//
//		img, err := hc.RenderDrawing(d)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := hc.SaveImage(img, "heart.png"); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package is a thin front over:
//
//  1. Heart math (pkg/heartmath): the parametric curve and geometry helpers
//  2. Shape matching (pkg/shape): sector coverage and shape validation
//  3. Detection (pkg/detection): feedback and the completion latch
//  4. Capture (pkg/capture): pointer input, sessions, and drawing files
//  5. Rendering (pkg/render): images of drawings over the tracing guide
package balentayms

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/lanceyyyy/balentayms/pkg/capture"
	"github.com/lanceyyyy/balentayms/pkg/detection"
	"github.com/lanceyyyy/balentayms/pkg/render"
	"github.com/lanceyyyy/balentayms/pkg/shape"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// Version of the heart recognizer library
const Version = "1.0.0"

// DefaultQuality is used for lossy formats by SaveImage
const DefaultQuality = 90

// HeartChecker provides a high-level interface for recognizing and rendering hearts
type HeartChecker struct {
	matcher  *shape.Matcher
	renderer *render.Renderer
}

// New creates a HeartChecker with default thresholds and colours
func New() *HeartChecker {
	matcher := shape.New()
	return &HeartChecker{
		matcher:  matcher,
		renderer: render.NewWithConfig(render.DefaultConfig(), matcher),
	}
}

// NewWithConfig creates a HeartChecker with custom thresholds and colours
func NewWithConfig(shapeConfig shape.Config, renderConfig render.Config) *HeartChecker {
	matcher := shape.NewWithConfig(shapeConfig)
	return &HeartChecker{
		matcher:  matcher,
		renderer: render.NewWithConfig(renderConfig, matcher),
	}
}

// Matcher returns the underlying shape matcher
func (hc *HeartChecker) Matcher() *shape.Matcher {
	return hc.matcher
}

// Analyze scores a set of points drawn on a canvas of the given size
func (hc *HeartChecker) Analyze(points []types.Point, canvasWidth, canvasHeight float64) types.CoverageResult {
	return hc.matcher.AnalyzeSectors(points, canvasWidth, canvasHeight)
}

// AnalyzeDrawing scores every point of a recorded drawing with feedback
func (hc *HeartChecker) AnalyzeDrawing(d types.Drawing) types.DetectionResult {
	det := detection.NewDetector(hc.matcher, d.Width, d.Height)
	return det.Analyze(d.Points())
}

// NewSession starts a live capture session on a canvas
func (hc *HeartChecker) NewSession(canvasWidth, canvasHeight float64, opts ...capture.SessionOption) *capture.Session {
	return capture.NewSession(hc.matcher, canvasWidth, canvasHeight, opts...)
}

// RenderDrawing paints the drawing over the guide with covered sectors highlighted
func (hc *HeartChecker) RenderDrawing(d types.Drawing) (*image.NRGBA, error) {
	if err := capture.ValidateDrawing(d); err != nil {
		return nil, err
	}
	result := hc.Analyze(d.Points(), d.Width, d.Height)
	img, err := hc.renderer.RenderDrawing(d, &result)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	return img, nil
}

// SaveImage saves an image, choosing the format from the file extension
func (hc *HeartChecker) SaveImage(img image.Image, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return render.SaveImage(img, path, format, DefaultQuality, false)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
