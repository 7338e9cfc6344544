package capture

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/pkg/detection"
	"github.com/lanceyyyy/balentayms/pkg/shape"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// DefaultFrameInterval is one frame at 60 Hz, in milliseconds
const DefaultFrameInterval = 1000.0 / 60

// Session is one attempt at drawing the heart: a canvas, a detector and the
// frame coalescing between them. Moves are analyzed at most once per frame
// interval, measured on event timestamps; down and up are always analyzed.
type Session struct {
	ID            string
	canvas        *Canvas
	detector      *detection.Detector
	frameInterval float64
	lastAnalysis  float64
	analyzed      bool
	logger        *zap.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithFrameInterval sets the minimum time between analyses during a move, in ms
func WithFrameInterval(ms float64) SessionOption {
	return func(s *Session) {
		if ms >= 0 {
			s.frameInterval = ms
		}
	}
}

// WithLogger sets the session logger
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session for a canvas of the given pixel size
func NewSession(matcher *shape.Matcher, width, height float64, opts ...SessionOption) *Session {
	s := &Session{
		ID:            uuid.NewString(),
		canvas:        NewCanvas(width, height),
		detector:      detection.NewDetector(matcher, width, height),
		frameInterval: DefaultFrameInterval,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.ID))
	s.detector.SetLogger(s.logger)
	return s
}

// Canvas returns the underlying canvas
func (s *Session) Canvas() *Canvas {
	return s.canvas
}

// Result returns the latest detection result
func (s *Session) Result() types.DetectionResult {
	return s.detector.Result()
}

// State describes what the session is doing
func (s *Session) State() types.DrawingState {
	switch {
	case s.detector.Complete():
		return types.DrawingComplete
	case s.canvas.Drawing():
		return types.DrawingActive
	default:
		return types.DrawingIdle
	}
}

// Complete reports whether the heart has been recognized. A complete
// session ignores further input.
func (s *Session) Complete() bool {
	return s.detector.Complete()
}

// Down starts a stroke and analyzes
func (s *Session) Down(p types.StrokePoint) types.DetectionResult {
	if s.Complete() {
		return s.Result()
	}
	s.canvas.PointerDown(p)
	return s.analyze(p.Timestamp)
}

// Move adds the coalesced samples of a move event. The second return value
// reports whether an analysis ran for this event.
func (s *Session) Move(coalesced ...types.StrokePoint) (types.DetectionResult, bool) {
	if s.Complete() || !s.canvas.Drawing() || len(coalesced) == 0 {
		return s.Result(), false
	}
	s.canvas.PointerMove(coalesced...)

	now := coalesced[len(coalesced)-1].Timestamp
	if s.analyzed && now-s.lastAnalysis < s.frameInterval {
		return s.Result(), false
	}
	return s.analyze(now), true
}

// Up ends the stroke and analyzes. A stroke that completed the heart is still
// committed to the canvas.
func (s *Session) Up(timestamp float64) types.DetectionResult {
	wasDrawing := s.canvas.Drawing()
	if !s.canvas.PointerUp() && wasDrawing {
		s.logger.Debug("dropped tap")
	}
	if s.Complete() {
		return s.Result()
	}
	return s.analyze(timestamp)
}

// Reset clears the canvas and the detector latch
func (s *Session) Reset() {
	s.canvas.Clear()
	s.detector.Reset()
	s.analyzed = false
	s.lastAnalysis = 0
}

// Resize changes the canvas size for subsequent analyses
func (s *Session) Resize(width, height float64) {
	s.canvas.Resize(width, height)
	s.detector.Resize(width, height)
}

func (s *Session) analyze(now float64) types.DetectionResult {
	s.analyzed = true
	s.lastAnalysis = now
	return s.detector.Analyze(s.canvas.AllPoints())
}
