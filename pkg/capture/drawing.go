package capture

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

var (
	// ErrInvalidCanvas is returned for drawings without a positive size
	ErrInvalidCanvas = errors.New("canvas width and height must be positive")
	// ErrNoStrokes is returned when a drawing has nothing to analyze
	ErrNoStrokes = errors.New("drawing has no strokes")
)

// ReadDrawing decodes a drawing from JSON
func ReadDrawing(r io.Reader) (types.Drawing, error) {
	var d types.Drawing
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return types.Drawing{}, fmt.Errorf("failed to decode drawing: %w", err)
	}
	if err := ValidateDrawing(d); err != nil {
		return types.Drawing{}, err
	}
	return d, nil
}

// LoadDrawing reads a drawing file
func LoadDrawing(path string) (types.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Drawing{}, fmt.Errorf("failed to open drawing: %w", err)
	}
	defer f.Close()

	d, err := ReadDrawing(f)
	if err != nil {
		return types.Drawing{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// SaveDrawing writes a drawing as indented JSON, creating parent directories
func SaveDrawing(path string, d types.Drawing) error {
	if err := ValidateDrawing(d); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create drawing directory: %w", err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal drawing: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write drawing: %w", err)
	}
	return nil
}

// ValidateDrawing checks the canvas size. Empty stroke lists are allowed;
// they analyze to the zero result.
func ValidateDrawing(d types.Drawing) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidCanvas, d.Width, d.Height)
	}
	return nil
}

// Replay feeds a recorded drawing through a session stroke by stroke, the
// way a live capture surface would, and returns the final result.
func Replay(s *Session, d types.Drawing) types.DetectionResult {
	s.Resize(d.Width, d.Height)
	for _, stroke := range d.Strokes {
		if len(stroke.Points) == 0 {
			continue
		}
		s.Down(stroke.Points[0])
		for _, p := range stroke.Points[1:] {
			s.Move(p)
		}
		s.Up(stroke.EndTime)
		if s.Complete() {
			break
		}
	}
	return s.Result()
}
