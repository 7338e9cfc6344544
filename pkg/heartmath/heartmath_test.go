package heartmath

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

func TestGenerateHeartPointsCount(t *testing.T) {
	for _, size := range [][2]float64{{800, 600}, {1600, 1200}, {375, 812}, {1, 1}} {
		w, h := size[0], size[1]
		points := GenerateHeartPoints(ReferencePoints, w/2, h/2, HeartScale(w, h))
		assert.Len(t, points, ReferencePoints, "canvas %vx%v", w, h)
	}
}

func TestGenerateHeartPointsDeterministic(t *testing.T) {
	scale := HeartScale(800, 600)
	a := GenerateHeartPoints(ReferencePoints, 400, 300, scale)
	b := GenerateHeartPoints(ReferencePoints, 400, 300, scale)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("GenerateHeartPoints not deterministic (-first +second):\n%s", diff)
	}
}

func TestGenerateHeartPointsEmpty(t *testing.T) {
	assert.Empty(t, GenerateHeartPoints(0, 10, 10, 1))
	assert.Empty(t, GenerateHeartPoints(-3, 10, 10, 1))
}

func TestGenerateHeartPointsShape(t *testing.T) {
	points := GenerateHeartPoints(ReferencePoints, 0, 0, 1)

	// t = 0 is the notch between the lobes, above the centre.
	assert.InDelta(t, 0, points[0].X, 1e-9)
	assert.InDelta(t, -5, points[0].Y, 1e-9)

	// t = π/2 is the widest point on the right.
	assert.InDelta(t, 16, points[ReferencePoints/4].X, 1e-9)

	// t = π is the tip, pointing down in screen space.
	assert.InDelta(t, 0, points[ReferencePoints/2].X, 1e-9)
	assert.InDelta(t, 17, points[ReferencePoints/2].Y, 1e-9)

	box := BoundingBox(points)
	assert.InDelta(t, 32, box.Width(), 1e-9)
	assert.Less(t, box.Height(), box.Width())
}

func TestHeartScale(t *testing.T) {
	assert.InDelta(t, 600*0.35/32, HeartScale(800, 600), 1e-12)
	assert.InDelta(t, 600*0.35/32, HeartScale(600, 800), 1e-12)
	assert.Equal(t, 0.0, HeartScale(0, 600))
}

func TestCentroid(t *testing.T) {
	c := Centroid([]types.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}})
	assert.Equal(t, types.Point{X: 2, Y: 1}, c)
	assert.Equal(t, types.Point{}, Centroid(nil))

	ref := GenerateHeartPoints(ReferencePoints, 400, 300, HeartScale(800, 600))
	rc := Centroid(ref)
	assert.InDelta(t, 400, rc.X, 1e-6)
	assert.InDelta(t, 300, rc.Y, 1e-6)
}

func TestBoundingBox(t *testing.T) {
	box := BoundingBox([]types.Point{{X: 3, Y: -1}, {X: -2, Y: 5}, {X: 1, Y: 1}})
	assert.Equal(t, Box{MinX: -2, MinY: -1, MaxX: 3, MaxY: 5}, box)
	assert.Equal(t, 5.0, box.Width())
	assert.Equal(t, 6.0, box.Height())
	assert.Equal(t, types.Point{X: 0.5, Y: 2}, box.Center())
}

func TestAngleFromCenter(t *testing.T) {
	c := types.Point{}
	tests := []struct {
		p    types.Point
		want float64
	}{
		{types.Point{X: 1, Y: 0}, 0},
		{types.Point{X: 0, Y: 1}, math.Pi / 2},
		{types.Point{X: -1, Y: 0}, math.Pi},
		{types.Point{X: 0, Y: -1}, 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		got := AngleFromCenter(c, tt.p)
		assert.InDelta(t, tt.want, got, 1e-12, "point %v", tt.p)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 2*math.Pi)
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(types.Point{X: 0, Y: 0}, types.Point{X: 3, Y: 4}))
}

func TestDistanceMatchesSquareRoot(t *testing.T) {
	// Proximity is a <= comparison, so the rounding of sqrt(dx²+dy²) matters.
	ref := GenerateHeartPoints(200, 400, 300, HeartScale(800, 600))
	c := Centroid(ref)
	for i, p := range ref {
		q := ref[(i*37+11)%len(ref)]
		dx, dy := p.X-q.X, p.Y-q.Y
		require.Equal(t, math.Sqrt(dx*dx+dy*dy), Distance(p, q), "pair %d", i)
		dx, dy = p.X-c.X, p.Y-c.Y
		require.Equal(t, math.Sqrt(dx*dx+dy*dy), Distance(p, c), "centroid %d", i)
	}
}

func TestSVGPath(t *testing.T) {
	path := SVGPath(400, 300, HeartScale(800, 600))
	require.True(t, strings.HasPrefix(path, "M "))
	require.True(t, strings.HasSuffix(path, " Z"))
	assert.Equal(t, ReferencePoints-1, strings.Count(path, " L "))
}

func BenchmarkGenerateHeartPoints(b *testing.B) {
	scale := HeartScale(1600, 1200)
	for i := 0; i < b.N; i++ {
		GenerateHeartPoints(ReferencePoints, 800, 600, scale)
	}
}
