// Package heartmath generates the parametric reference heart and provides the
// small amount of planar geometry the recognizer and the guide overlay share.
package heartmath

import (
	"math"
	"strconv"
	"strings"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

// ReferencePoints is the resolution of the reference curve
const ReferencePoints = 200

// FillRatio is the fraction of the smaller canvas side the heart occupies
const FillRatio = 0.35

// curveSpan is the approximate full span of the unscaled parametric curve
const curveSpan = 32

// GenerateHeartPoints samples count points along the classic parametric heart
//
//	x = 16 sin³(t)
//	y = -(13 cos(t) - 5 cos(2t) - 2 cos(3t) - cos(4t))
//
// The y axis is inverted so the lobes point up in screen coordinates.
func GenerateHeartPoints(count int, centerX, centerY, scale float64) []types.Point {
	if count <= 0 {
		return []types.Point{}
	}
	points := make([]types.Point, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count) * 2 * math.Pi
		s := math.Sin(t)
		x := 16 * s * s * s
		y := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		points[i] = types.Point{
			X: centerX + x*scale,
			Y: centerY + y*scale,
		}
	}
	return points
}

// HeartScale returns the curve scale for a canvas of the given size
func HeartScale(width, height float64) float64 {
	return math.Min(width, height) * FillRatio / curveSpan
}

// Box is an axis-aligned bounding box
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Center returns the middle of the box
func (b Box) Center() types.Point {
	return types.Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// BoundingBox returns the extents of points. An empty set yields an inverted
// box with infinite bounds.
func BoundingBox(points []types.Point) Box {
	b := Box{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Centroid returns the arithmetic mean of points
func Centroid(points []types.Point) types.Point {
	if len(points) == 0 {
		return types.Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return types.Point{X: sx / n, Y: sy / n}
}

// Distance returns the euclidean distance between two points
func Distance(a, b types.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleFromCenter returns the angle of point around center in [0, 2π)
func AngleFromCenter(center, point types.Point) float64 {
	angle := math.Atan2(point.Y-center.Y, point.X-center.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// SVGPath returns a closed SVG path through the reference curve, for use as a
// tracing guide.
func SVGPath(centerX, centerY, scale float64) string {
	points := GenerateHeartPoints(ReferencePoints, centerX, centerY, scale)
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	sb.WriteString(" Z")
	return sb.String()
}
