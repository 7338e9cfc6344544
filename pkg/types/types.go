package types

// NumSectors is the number of 30° slices the reference outline is split into
const NumSectors = 12

// Point represents a 2D coordinate in canvas pixel space (device-pixel-ratio scaled)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StrokePoint is a single pointer sample captured while drawing
type StrokePoint struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Pressure    float64 `json:"pressure"`
	TiltX       float64 `json:"tiltX"`
	TiltY       float64 `json:"tiltY"`
	Timestamp   float64 `json:"timestamp"`
	PointerType string  `json:"pointerType"`
}

// Point drops everything but the coordinates
func (p StrokePoint) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

// Pointer types reported by the input device
const (
	PointerPen   = "pen"
	PointerMouse = "mouse"
	PointerTouch = "touch"
)

// Stroke is one pointer-down to pointer-up sequence
type Stroke struct {
	Points    []StrokePoint `json:"points"`
	StartTime float64       `json:"startTime"`
	EndTime   float64       `json:"endTime"`
}

// Drawing is a serializable snapshot of a capture surface
type Drawing struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Strokes []Stroke `json:"strokes"`
}

// Points flattens all strokes into a single point set
func (d Drawing) Points() []Point {
	n := 0
	for _, s := range d.Strokes {
		n += len(s.Points)
	}
	out := make([]Point, 0, n)
	for _, s := range d.Strokes {
		for _, p := range s.Points {
			out = append(out, p.Point())
		}
	}
	return out
}

// CoverageResult is the verdict of a sector coverage analysis
type CoverageResult struct {
	CoveredSectors     [NumSectors]bool `json:"coveredSectors"`
	CoveragePercentage float64          `json:"coveragePercentage"`
	IsComplete         bool             `json:"isComplete"`
	IsValidShape       bool             `json:"isValidShape"`
}

// CoveredCount returns how many sectors are covered
func (r CoverageResult) CoveredCount() int {
	n := 0
	for _, c := range r.CoveredSectors {
		if c {
			n++
		}
	}
	return n
}

// Feedback is the user-facing progress state derived from a coverage result
type Feedback string

const (
	FeedbackIdle      Feedback = "idle"
	FeedbackKeepGoing Feedback = "keep-going"
	FeedbackAlmost    Feedback = "almost"
	FeedbackComplete  Feedback = "complete"
)

// DetectionResult is a coverage result plus the feedback state shown to the user
type DetectionResult struct {
	CoverageResult
	Feedback Feedback `json:"feedback"`
}

// Stage names the five sequential parts of the card
type Stage string

const (
	StageDrawHeart   Stage = "draw-heart"
	StageTimeline    Stage = "timeline"
	StageWriteWithMe Stage = "write-with-me"
	StageBuildMoment Stage = "build-moment"
	StageTheQuestion Stage = "the-question"
)

// DrawingState describes what a capture surface is doing
type DrawingState string

const (
	DrawingIdle     DrawingState = "idle"
	DrawingActive   DrawingState = "drawing"
	DrawingComplete DrawingState = "complete"
)

// ReviewResult is the advisory verdict of a vision model looking at a rendered drawing
type ReviewResult struct {
	IsHeart     bool     `json:"is_heart"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}
