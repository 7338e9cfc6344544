package balentayms

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanceyyyy/balentayms/pkg/capture"
	"github.com/lanceyyyy/balentayms/pkg/heartmath"
	"github.com/lanceyyyy/balentayms/pkg/render"
	"github.com/lanceyyyy/balentayms/pkg/shape"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

func tracedHeart(width, height float64) types.Drawing {
	ref := heartmath.GenerateHeartPoints(400, width/2, height/2, heartmath.HeartScale(width, height))
	points := make([]types.StrokePoint, len(ref))
	for i, p := range ref {
		points[i] = types.StrokePoint{X: p.X, Y: p.Y, Pressure: 0.5, Timestamp: float64(i) * 20, PointerType: types.PointerMouse}
	}
	return types.Drawing{Width: width, Height: height, Strokes: []types.Stroke{{Points: points, EndTime: 8000}}}
}

func TestNew(t *testing.T) {
	hc := New()
	require.NotNil(t, hc)
	assert.Equal(t, shape.DefaultConfig(), hc.Matcher().Config())
}

func TestNewWithConfig(t *testing.T) {
	sc := shape.DefaultConfig()
	sc.CoverageThreshold = 1.01
	hc := NewWithConfig(sc, render.DefaultConfig())

	result := hc.AnalyzeDrawing(tracedHeart(800, 600))
	assert.Equal(t, 100.0, result.CoveragePercentage)
	assert.False(t, result.IsComplete, "threshold above 100% can never be met")
}

func TestAnalyze(t *testing.T) {
	hc := New()
	d := tracedHeart(800, 600)

	r := hc.Analyze(d.Points(), d.Width, d.Height)
	assert.True(t, r.IsComplete)
	assert.True(t, r.IsValidShape)

	dr := hc.AnalyzeDrawing(d)
	assert.Equal(t, types.FeedbackComplete, dr.Feedback)

	assert.Equal(t, types.CoverageResult{}, hc.Analyze(d.Points()[:5], 800, 600))
}

func TestSessionReplay(t *testing.T) {
	hc := New()
	d := tracedHeart(1600, 1200)
	s := hc.NewSession(d.Width, d.Height)

	result := capture.Replay(s, d)
	assert.True(t, result.IsComplete)
	assert.Equal(t, types.DrawingComplete, s.State())
}

func TestRenderAndSave(t *testing.T) {
	hc := New()
	d := tracedHeart(400, 300)

	img, err := hc.RenderDrawing(d)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())

	path := filepath.Join(t.TempDir(), "heart.png")
	require.NoError(t, hc.SaveImage(img, path))
	loaded, err := render.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), loaded.Bounds())

	assert.Error(t, hc.SaveImage(img, filepath.Join(t.TempDir(), "heart.gif")))

	_, err = hc.RenderDrawing(types.Drawing{})
	assert.ErrorIs(t, err, capture.ErrInvalidCanvas)
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
