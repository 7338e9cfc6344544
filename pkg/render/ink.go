package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

// pressureRate controls how quickly simulated pressure follows pointer speed
const pressureRate = 0.275

// strokeRadius maps pressure to a radius. Thinning 0 gives a constant width;
// positive thinning makes light pressure thinner.
func strokeRadius(size, thinning, pressure float64) float64 {
	return size * (0.5 - thinning*(0.5-pressure))
}

// simulatePressure derives pressure from speed for pointers without a
// pressure sensor: fast movement thins the line.
func simulatePressure(points []types.StrokePoint, size float64) []float64 {
	out := make([]float64, len(points))
	if len(points) == 0 {
		return out
	}
	prev := points[0].Pressure
	if prev <= 0 {
		prev = 0.5
	}
	out[0] = prev
	for i := 1; i < len(points); i++ {
		dist := math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
		sp := math.Min(1, dist/size)
		rp := math.Min(1, 1-sp)
		prev = math.Min(1, prev+(rp-prev)*(sp*pressureRate))
		out[i] = prev
	}
	return out
}

func strokePressures(points []types.StrokePoint, size float64) []float64 {
	if len(points) > 0 && points[0].PointerType == types.PointerPen {
		out := make([]float64, len(points))
		for i, p := range points {
			out[i] = p.Pressure
		}
		return out
	}
	return simulatePressure(points, size)
}

// drawStroke strokes each segment with round caps, its width the mean of
// the two sample radii. Single-sample strokes are not drawn.
func drawStroke(dc *gg.Context, points []types.StrokePoint, size, thinning float64, c color.NRGBA) error {
	if len(points) < 2 || size <= 0 {
		return nil
	}
	pressures := strokePressures(points, size)
	radius := func(i int) float64 {
		return math.Max(0.5, strokeRadius(size, thinning, pressures[i]))
	}

	dc.SetColor(c)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dc.SetLineWidth(radius(i-1) + radius(i))
		dc.MoveTo(a.X, a.Y)
		dc.LineTo(b.X, b.Y)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("failed to stroke segment %d: %w", i, err)
		}
	}
	return nil
}
