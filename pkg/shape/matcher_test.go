package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanceyyyy/balentayms/pkg/heartmath"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// traceHeart samples the reference curve densely, as a perfect tracing would
func traceHeart(n int, width, height float64) []types.Point {
	return heartmath.GenerateHeartPoints(n, width/2, height/2, heartmath.HeartScale(width, height))
}

func ellipse(n int, cx, cy, rx, ry float64) []types.Point {
	points := make([]types.Point, n)
	for i := range points {
		t := float64(i) / float64(n) * 2 * math.Pi
		points[i] = types.Point{X: cx + rx*math.Cos(t), Y: cy + ry*math.Sin(t)}
	}
	return points
}

func TestNew(t *testing.T) {
	m := New()
	require.NotNil(t, m)
	assert.Equal(t, DefaultConfig(), m.Config())
}

func TestNewWithConfigFillsReferencePoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReferencePoints = 0
	m := NewWithConfig(cfg)
	assert.Equal(t, heartmath.ReferencePoints, m.Config().ReferencePoints)
}

func TestAnalyzeSectorsTooFewPoints(t *testing.T) {
	m := New()

	for _, n := range []int{0, 1, 9} {
		result := m.AnalyzeSectors(traceHeart(n, 800, 600), 800, 600)
		assert.Equal(t, types.CoverageResult{}, result, "%d points", n)
		assert.Len(t, result.CoveredSectors, types.NumSectors)
	}

	assert.Equal(t, types.CoverageResult{}, m.AnalyzeSectors(nil, 800, 600))
}

func TestAnalyzeSectorsZeroCanvas(t *testing.T) {
	m := New()
	points := traceHeart(500, 800, 600)
	assert.Equal(t, types.CoverageResult{}, m.AnalyzeSectors(points, 0, 600))
	assert.Equal(t, types.CoverageResult{}, m.AnalyzeSectors(points, 800, 0))
}

func TestAnalyzeSectorsExactTrace(t *testing.T) {
	m := New()
	result := m.AnalyzeSectors(traceHeart(500, 800, 600), 800, 600)

	assert.Equal(t, 100.0, result.CoveragePercentage)
	assert.True(t, result.IsValidShape)
	assert.True(t, result.IsComplete)
	for i, covered := range result.CoveredSectors {
		assert.True(t, covered, "sector %d", i)
	}
}

func TestAnalyzeSectorsResolutionIndependent(t *testing.T) {
	m := New()
	for _, size := range [][2]float64{{800, 600}, {1600, 1200}, {390, 844}, {2732, 2048}} {
		w, h := size[0], size[1]
		result := m.AnalyzeSectors(traceHeart(500, w, h), w, h)
		assert.True(t, result.IsComplete, "canvas %vx%v: %+v", w, h, result)
	}
}

func TestAnalyzeSectorsCenterCluster(t *testing.T) {
	m := New()
	points := make([]types.Point, 50)
	for i := range points {
		angle := float64(i) * 0.7
		r := float64(i%5) + 0.5
		points[i] = types.Point{X: 400 + r*math.Cos(angle), Y: 300 + r*math.Sin(angle)}
	}

	result := m.AnalyzeSectors(points, 800, 600)
	assert.LessOrEqual(t, result.CoveredCount(), 2)
	assert.Less(t, result.CoveragePercentage, 70.0)
	assert.False(t, result.IsValidShape)
	assert.False(t, result.IsComplete)
}

func TestAnalyzeSectorsFlatEllipse(t *testing.T) {
	m := New()
	// 400 px wide, 10 px tall
	result := m.AnalyzeSectors(ellipse(300, 400, 300, 200, 5), 800, 600)
	assert.False(t, result.IsValidShape)
	assert.False(t, result.IsComplete)
}

func TestAnalyzeSectorsPartialTrace(t *testing.T) {
	m := New()
	full := traceHeart(500, 800, 600)

	// The right half of the outline, notch to tip.
	half := full[:251]
	result := m.AnalyzeSectors(half, 800, 600)
	assert.Greater(t, result.CoveragePercentage, 0.0)
	assert.Less(t, result.CoveragePercentage, 70.0)
	assert.False(t, result.IsComplete)
}

func TestAnalyzeSectorsCoverageInvariant(t *testing.T) {
	m := New()
	full := traceHeart(500, 800, 600)
	for _, n := range []int{10, 60, 120, 250, 400, 500} {
		result := m.AnalyzeSectors(full[:n], 800, 600)
		want := 100 * float64(result.CoveredCount()) / types.NumSectors
		assert.InDelta(t, want, result.CoveragePercentage, 1e-9)
		if result.IsComplete {
			assert.GreaterOrEqual(t, result.CoveragePercentage, 70.0)
			assert.True(t, result.IsValidShape)
		}
	}
}

func TestAnalyzeSectorsIdempotent(t *testing.T) {
	m := New()
	points := traceHeart(320, 1024, 768)
	assert.Equal(t, m.AnalyzeSectors(points, 1024, 768), m.AnalyzeSectors(points, 1024, 768))
}

func TestReferenceSectorsPartition(t *testing.T) {
	m := New()
	ref := m.Reference(800, 600)
	require.Len(t, ref.Points, heartmath.ReferencePoints)
	require.Len(t, ref.Sectors, heartmath.ReferencePoints)

	sectorWidth := 2 * math.Pi / types.NumSectors
	for i, p := range ref.Points {
		s := ref.Sectors[i]
		require.GreaterOrEqual(t, s, 0)
		require.Less(t, s, types.NumSectors)

		angle := heartmath.AngleFromCenter(ref.Centroid, p)
		assert.GreaterOrEqual(t, angle, float64(s)*sectorWidth-1e-9, "point %d", i)
		assert.Less(t, angle, float64(s+1)*sectorWidth+1e-9, "point %d", i)
	}
}

func TestSectorForIncreasesWithAngle(t *testing.T) {
	center := types.Point{X: 10, Y: 10}
	prev := -1
	for deg := 1.0; deg < 360; deg += 2 {
		rad := deg * math.Pi / 180
		s := SectorFor(center, types.Point{X: 10 + math.Cos(rad), Y: 10 + math.Sin(rad)})
		assert.GreaterOrEqual(t, s, prev, "angle %v", deg)
		assert.Equal(t, int(deg)/30, s, "angle %v", deg)
		prev = s
	}
}

func TestReferenceGeometry(t *testing.T) {
	m := New()
	ref := m.Reference(800, 600)
	scale := heartmath.HeartScale(800, 600)
	assert.InDelta(t, 16*scale, ref.BoundingRadius, 1e-9)
	assert.InDelta(t, ref.BoundingRadius*0.18, ref.Proximity, 1e-12)
	assert.InDelta(t, 400, ref.Centroid.X, 1e-6)
	assert.InDelta(t, 300, ref.Centroid.Y, 1e-6)
}

func TestValidateShape(t *testing.T) {
	m := New()
	ref := m.Reference(800, 600)
	trace := traceHeart(100, 800, 600)

	tests := []struct {
		name   string
		points []types.Point
		want   bool
	}{
		{"reference trace", trace, true},
		{"too few points", trace[:19], false},
		{"too tall", ellipse(100, 400, 300, 20, 100), false},
		{"too wide", ellipse(100, 400, 300, 100, 20), false},
		{"too small", ellipse(100, 400, 300, 10, 10), false},
		{"scattered far away", ellipse(100, 5000, 5000, 100, 100), false},
		{"round blob", ellipse(100, 400, 300, 100, 100), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ValidateShape(tt.points, ref.Centroid, ref.BoundingRadius))
		})
	}
}

func TestValidateShapeDegenerateBox(t *testing.T) {
	m := New()
	points := make([]types.Point, 30)
	for i := range points {
		points[i] = types.Point{X: 400, Y: 300}
	}
	assert.False(t, m.ValidateShape(points, types.Point{X: 400, Y: 300}, 100))
}

func BenchmarkAnalyzeSectors(b *testing.B) {
	m := New()
	points := traceHeart(3000, 1600, 1200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.AnalyzeSectors(points, 1600, 1200)
	}
}
