// Package capture accumulates pointer samples into strokes and feeds the
// flattened point log to the heart detector.
package capture

import (
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// DefaultPressure is reported for pointers that do not measure pressure
const DefaultPressure = 0.5

// FromClient converts a pointer event in CSS pixels into a canvas sample.
// Coordinates are scaled by the device pixel ratio; only pens keep their
// reported pressure. Tilt is copied as reported.
func FromClient(clientX, clientY, rectLeft, rectTop, dpr, pressure, tiltX, tiltY float64, pointerType string, timestamp float64) types.StrokePoint {
	if dpr <= 0 {
		dpr = 1
	}
	if pointerType != types.PointerPen {
		pressure = DefaultPressure
	}
	return types.StrokePoint{
		X:           (clientX - rectLeft) * dpr,
		Y:           (clientY - rectTop) * dpr,
		Pressure:    pressure,
		TiltX:       tiltX,
		TiltY:       tiltY,
		Timestamp:   timestamp,
		PointerType: pointerType,
	}
}

// Canvas records strokes. Points are only ever appended until Clear.
type Canvas struct {
	width   float64
	height  float64
	strokes []types.Stroke
	current []types.StrokePoint
	drawing bool
}

// NewCanvas creates an empty canvas of the given pixel size
func NewCanvas(width, height float64) *Canvas {
	return &Canvas{width: width, height: height}
}

// Size returns the canvas size in pixels
func (c *Canvas) Size() (float64, float64) {
	return c.width, c.height
}

// Resize changes the canvas size without touching recorded strokes
func (c *Canvas) Resize(width, height float64) {
	c.width, c.height = width, height
}

// Drawing reports whether a stroke is in progress
func (c *Canvas) Drawing() bool {
	return c.drawing
}

// PointerDown starts a new stroke
func (c *Canvas) PointerDown(p types.StrokePoint) {
	c.drawing = true
	c.current = []types.StrokePoint{p}
}

// PointerMove appends the coalesced samples of one move event. Moves outside
// a stroke are ignored.
func (c *Canvas) PointerMove(coalesced ...types.StrokePoint) {
	if !c.drawing {
		return
	}
	c.current = append(c.current, coalesced...)
}

// PointerUp ends the current stroke. Strokes of a single sample are taps and
// are dropped. It returns whether a stroke was committed.
func (c *Canvas) PointerUp() bool {
	if !c.drawing {
		return false
	}
	c.drawing = false
	committed := false
	if len(c.current) > 1 {
		c.strokes = append(c.strokes, types.Stroke{
			Points:    c.current,
			StartTime: c.current[0].Timestamp,
			EndTime:   c.current[len(c.current)-1].Timestamp,
		})
		committed = true
	}
	c.current = nil
	return committed
}

// Strokes returns the committed strokes
func (c *Canvas) Strokes() []types.Stroke {
	return c.strokes
}

// CurrentStroke returns the samples of the stroke in progress
func (c *Canvas) CurrentStroke() []types.StrokePoint {
	return c.current
}

// AllPoints flattens committed strokes and the stroke in progress
func (c *Canvas) AllPoints() []types.Point {
	n := len(c.current)
	for _, s := range c.strokes {
		n += len(s.Points)
	}
	points := make([]types.Point, 0, n)
	for _, s := range c.strokes {
		for _, p := range s.Points {
			points = append(points, p.Point())
		}
	}
	for _, p := range c.current {
		points = append(points, p.Point())
	}
	return points
}

// Snapshot returns the committed strokes as a Drawing
func (c *Canvas) Snapshot() types.Drawing {
	strokes := make([]types.Stroke, len(c.strokes))
	copy(strokes, c.strokes)
	return types.Drawing{Width: c.width, Height: c.height, Strokes: strokes}
}

// Clear forgets every stroke
func (c *Canvas) Clear() {
	c.strokes = nil
	c.current = nil
	c.drawing = false
}
