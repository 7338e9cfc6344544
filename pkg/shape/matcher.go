package shape

import (
	"math"

	"github.com/lanceyyyy/balentayms/pkg/heartmath"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// Matcher compares freehand points against the reference heart
type Matcher struct {
	config Config
}

// Config holds the recognizer thresholds. The defaults are empirical and
// existing drawings are judged against them, so change with care.
type Config struct {
	ReferencePoints   int
	MinPoints         int     // below this nothing is analyzed
	ProximityRatio    float64 // of the bounding radius
	CoverageThreshold float64 // fraction of sectors, 0..1
	MinShapePoints    int
	MinAspectRatio    float64
	MaxAspectRatio    float64
	MinSizeRatio      float64 // largest drawn side vs bounding radius
	MaxScatterRatio   float64 // mean distance to centroid vs bounding radius
}

// DefaultConfig returns the thresholds the recognizer ships with
func DefaultConfig() Config {
	return Config{
		ReferencePoints:   heartmath.ReferencePoints,
		MinPoints:         10,
		ProximityRatio:    0.18,
		CoverageThreshold: 0.70,
		MinShapePoints:    20,
		MinAspectRatio:    0.5,
		MaxAspectRatio:    1.8,
		MinSizeRatio:      0.5,
		MaxScatterRatio:   2,
	}
}

// New creates a Matcher with the default thresholds
func New() *Matcher {
	return &Matcher{config: DefaultConfig()}
}

// NewWithConfig creates a Matcher with custom thresholds
func NewWithConfig(config Config) *Matcher {
	if config.ReferencePoints <= 0 {
		config.ReferencePoints = heartmath.ReferencePoints
	}
	return &Matcher{config: config}
}

// Config returns the thresholds in use
func (m *Matcher) Config() Config {
	return m.config
}

// Reference is the geometry a canvas is judged against
type Reference struct {
	Points         []types.Point
	Sectors        []int // sector index of each point
	Centroid       types.Point
	BoundingRadius float64
	Proximity      float64
}

// Reference builds the reference heart for a canvas, centered and scaled the
// same way the tracing guide is.
func (m *Matcher) Reference(canvasWidth, canvasHeight float64) Reference {
	scale := heartmath.HeartScale(canvasWidth, canvasHeight)
	points := heartmath.GenerateHeartPoints(m.config.ReferencePoints, canvasWidth/2, canvasHeight/2, scale)
	centroid := heartmath.Centroid(points)
	box := heartmath.BoundingBox(points)
	radius := math.Max(box.Width(), box.Height()) / 2

	return Reference{
		Points:         points,
		Sectors:        ReferenceSectors(points, centroid),
		Centroid:       centroid,
		BoundingRadius: radius,
		Proximity:      radius * m.config.ProximityRatio,
	}
}

// SectorFor returns the index in [0, NumSectors) of the slice containing p as
// seen from center.
func SectorFor(center, p types.Point) int {
	angle := heartmath.AngleFromCenter(center, p)
	return int(math.Floor(angle/(2*math.Pi)*types.NumSectors)) % types.NumSectors
}

// ReferenceSectors assigns every point to exactly one sector
func ReferenceSectors(points []types.Point, center types.Point) []int {
	sectors := make([]int, len(points))
	for i, p := range points {
		sectors[i] = SectorFor(center, p)
	}
	return sectors
}

// AnalyzeSectors reports how much of the reference outline the drawn points
// trace and whether the drawing is heart-like overall. It never fails:
// insufficient input or an empty canvas yields the zero result.
func (m *Matcher) AnalyzeSectors(drawn []types.Point, canvasWidth, canvasHeight float64) types.CoverageResult {
	var result types.CoverageResult
	if len(drawn) < m.config.MinPoints || canvasWidth <= 0 || canvasHeight <= 0 {
		return result
	}

	ref := m.Reference(canvasWidth, canvasHeight)

	// Brute force is fine at a few thousand drawn points against 200.
	for _, dp := range drawn {
		for i, rp := range ref.Points {
			if heartmath.Distance(dp, rp) <= ref.Proximity {
				result.CoveredSectors[ref.Sectors[i]] = true
			}
		}
	}

	result.CoveragePercentage = float64(result.CoveredCount()) / types.NumSectors * 100
	result.IsValidShape = m.ValidateShape(drawn, ref.Centroid, ref.BoundingRadius)
	result.IsComplete = result.CoveragePercentage >= m.config.CoverageThreshold*100 && result.IsValidShape

	return result
}

// ValidateShape rejects drawings that reach the coverage threshold by accident:
// elongated scribbles, tiny doodles and scattered taps.
func (m *Matcher) ValidateShape(points []types.Point, refCentroid types.Point, boundingRadius float64) bool {
	if len(points) < m.config.MinShapePoints {
		return false
	}

	box := heartmath.BoundingBox(points)

	aspect := box.Width() / box.Height()
	if aspect < m.config.MinAspectRatio || aspect > m.config.MaxAspectRatio {
		return false
	}

	if math.Max(box.Width(), box.Height()) < boundingRadius*m.config.MinSizeRatio {
		return false
	}

	var total float64
	for _, p := range points {
		total += heartmath.Distance(p, refCentroid)
	}
	if total/float64(len(points)) > boundingRadius*m.config.MaxScatterRatio {
		return false
	}

	return true
}
