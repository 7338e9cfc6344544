package detection

import (
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/pkg/shape"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// AlmostThreshold is the coverage percentage at which feedback turns to "almost"
const AlmostThreshold = 50

// Classify maps a coverage verdict to the feedback shown while drawing
func Classify(coverage float64, complete bool) types.Feedback {
	switch {
	case complete:
		return types.FeedbackComplete
	case coverage >= AlmostThreshold:
		return types.FeedbackAlmost
	case coverage > 0:
		return types.FeedbackKeepGoing
	default:
		return types.FeedbackIdle
	}
}

// Detector runs the heart matcher over a growing point log and latches once
// the drawing is complete. After that, Analyze keeps returning the completed
// result without re-analyzing.
type Detector struct {
	matcher *shape.Matcher
	width   float64
	height  float64
	result  types.DetectionResult
	done    bool
	logger  *zap.Logger
}

// NewDetector creates a detector for a canvas of the given pixel size
func NewDetector(matcher *shape.Matcher, width, height float64) *Detector {
	if matcher == nil {
		matcher = shape.New()
	}
	return &Detector{
		matcher: matcher,
		width:   width,
		height:  height,
		result:  types.DetectionResult{Feedback: types.FeedbackIdle},
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger used for state changes
func (d *Detector) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.logger = logger
}

// Resize updates the canvas size used for subsequent analyses
func (d *Detector) Resize(width, height float64) {
	d.width, d.height = width, height
}

// Analyze judges the full point history. A canvas with no area leaves the
// previous result untouched.
func (d *Detector) Analyze(points []types.Point) types.DetectionResult {
	if d.done {
		return d.result
	}
	if d.width <= 0 || d.height <= 0 {
		return d.result
	}

	analysis := d.matcher.AnalyzeSectors(points, d.width, d.height)
	feedback := Classify(analysis.CoveragePercentage, analysis.IsComplete)

	if feedback != d.result.Feedback {
		d.logger.Debug("feedback changed",
			zap.String("from", string(d.result.Feedback)),
			zap.String("to", string(feedback)),
			zap.Float64("coverage", analysis.CoveragePercentage),
			zap.Int("points", len(points)))
	}

	d.result = types.DetectionResult{CoverageResult: analysis, Feedback: feedback}
	if feedback == types.FeedbackComplete {
		d.done = true
		d.logger.Info("heart complete",
			zap.Float64("coverage", analysis.CoveragePercentage),
			zap.Int("points", len(points)))
	}
	return d.result
}

// Result returns the latest result
func (d *Detector) Result() types.DetectionResult {
	return d.result
}

// Complete reports whether the latch has fired
func (d *Detector) Complete() bool {
	return d.done
}

// Reset discards the latch and the last result
func (d *Detector) Reset() {
	d.done = false
	d.result = types.DetectionResult{Feedback: types.FeedbackIdle}
}
