package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lanceyyyy/balentayms/pkg/render"
	"github.com/lanceyyyy/balentayms/pkg/shape"
)

// Environment variables that override file values
const (
	EnvReviewURL     = "HEARTCHECK_REVIEW_URL"
	EnvReviewModel   = "HEARTCHECK_REVIEW_MODEL"
	EnvReviewBackend = "HEARTCHECK_REVIEW_BACKEND"
	EnvLogLevel      = "HEARTCHECK_LOG_LEVEL"
)

// Config holds the application configuration
type Config struct {
	Recognizer RecognizerConfig `yaml:"recognizer"`
	Capture    CaptureConfig    `yaml:"capture"`
	Render     RenderConfig     `yaml:"render"`
	Review     ReviewConfig     `yaml:"review"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// RecognizerConfig holds the shape recognizer thresholds
type RecognizerConfig struct {
	ReferencePoints   int     `yaml:"reference_points"`
	MinPoints         int     `yaml:"min_points"`
	ProximityRatio    float64 `yaml:"proximity_ratio"`
	CoverageThreshold float64 `yaml:"coverage_threshold"`
	MinShapePoints    int     `yaml:"min_shape_points"`
	MinAspectRatio    float64 `yaml:"min_aspect_ratio"`
	MaxAspectRatio    float64 `yaml:"max_aspect_ratio"`
	MinSizeRatio      float64 `yaml:"min_size_ratio"`
	MaxScatterRatio   float64 `yaml:"max_scatter_ratio"`
}

// CaptureConfig holds the drawing surface settings
type CaptureConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	FrameInterval float64 `yaml:"frame_interval_ms"`
	DebounceMS    int     `yaml:"debounce_ms"`
}

// RenderConfig holds rendering colours and ink settings
type RenderConfig struct {
	Background     string  `yaml:"background"`
	BackgroundPath string  `yaml:"background_path"`
	Ink            string  `yaml:"ink"`
	Guide          string  `yaml:"guide"`
	Covered        string  `yaml:"covered"`
	Crosshair      string  `yaml:"crosshair"`
	StrokeSize     float64 `yaml:"stroke_size"`
	Thinning       float64 `yaml:"thinning"`
	ShowGuide      bool    `yaml:"show_guide"`
	ShowCentroid   bool    `yaml:"show_centroid"`
}

// ReviewConfig holds the vision model backend settings
type ReviewConfig struct {
	Backend  string `yaml:"backend"`
	URL      string `yaml:"url"`
	Model    string `yaml:"model"`
	SendSize int    `yaml:"send_size"`
	TimeoutS int    `yaml:"timeout_seconds"`
}

// OutputConfig holds settings for written images
type OutputConfig struct {
	Format    string `yaml:"format"`
	Quality   int    `yaml:"quality"`
	Lossless  bool   `yaml:"lossless"`
	OutputDir string `yaml:"output_dir"`
	Suffix    string `yaml:"suffix"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a configuration with default values
func Default() *Config {
	sc := shape.DefaultConfig()
	return &Config{
		Recognizer: RecognizerConfig{
			ReferencePoints:   sc.ReferencePoints,
			MinPoints:         sc.MinPoints,
			ProximityRatio:    sc.ProximityRatio,
			CoverageThreshold: sc.CoverageThreshold,
			MinShapePoints:    sc.MinShapePoints,
			MinAspectRatio:    sc.MinAspectRatio,
			MaxAspectRatio:    sc.MaxAspectRatio,
			MinSizeRatio:      sc.MinSizeRatio,
			MaxScatterRatio:   sc.MaxScatterRatio,
		},
		Capture: CaptureConfig{
			Width:         800,
			Height:        600,
			FrameInterval: 1000.0 / 60,
			DebounceMS:    200,
		},
		Render: RenderConfig{
			Background: "#1a0a14",
			Ink:        "#dc2850",
			Guide:      "#ffb6c1",
			Covered:    "#ffd700",
			Crosshair:  "#00aaff",
			StrokeSize: 10,
			Thinning:   0.5,
			ShowGuide:  true,
		},
		Review: ReviewConfig{
			Backend:  "ollama",
			URL:      "http://localhost:11434",
			Model:    "openbmb/minicpm-v4.5",
			SendSize: 768,
			TimeoutS: 300,
		},
		Output: OutputConfig{
			Format:    "png",
			Quality:   90,
			OutputDir: "./output",
			Suffix:    "_heart",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads the file at path if it exists, falls back to the defaults
// otherwise, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err = LoadFromFile(path)
			if err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides review and logging settings from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvReviewURL); v != "" {
		c.Review.URL = v
	}
	if v := os.Getenv(EnvReviewModel); v != "" {
		c.Review.Model = v
	}
	if v := os.Getenv(EnvReviewBackend); v != "" {
		c.Review.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	r := c.Recognizer
	if r.ReferencePoints < 1 {
		return fmt.Errorf("recognizer.reference_points must be positive")
	}
	if r.MinPoints < 0 {
		return fmt.Errorf("recognizer.min_points must not be negative")
	}
	if r.ProximityRatio <= 0 {
		return fmt.Errorf("recognizer.proximity_ratio must be positive")
	}
	if r.CoverageThreshold < 0 || r.CoverageThreshold > 1 {
		return fmt.Errorf("recognizer.coverage_threshold must be between 0 and 1")
	}
	if r.MinAspectRatio <= 0 || r.MaxAspectRatio < r.MinAspectRatio {
		return fmt.Errorf("recognizer.min_aspect_ratio must be positive and not above max_aspect_ratio")
	}
	if r.MinSizeRatio < 0 || r.MaxScatterRatio <= 0 {
		return fmt.Errorf("recognizer.min_size_ratio and max_scatter_ratio must be positive")
	}

	if c.Capture.Width <= 0 || c.Capture.Height <= 0 {
		return fmt.Errorf("capture.width and capture.height must be positive")
	}
	if c.Capture.FrameInterval < 0 {
		return fmt.Errorf("capture.frame_interval_ms must not be negative")
	}
	if c.Capture.DebounceMS < 0 {
		return fmt.Errorf("capture.debounce_ms must not be negative")
	}

	for key, hex := range map[string]string{
		"render.background": c.Render.Background,
		"render.ink":        c.Render.Ink,
		"render.guide":      c.Render.Guide,
		"render.covered":    c.Render.Covered,
		"render.crosshair":  c.Render.Crosshair,
	} {
		if _, err := render.ParseColor(hex); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	if c.Render.StrokeSize <= 0 {
		return fmt.Errorf("render.stroke_size must be positive")
	}
	if c.Render.Thinning < -1 || c.Render.Thinning > 1 {
		return fmt.Errorf("render.thinning must be between -1 and 1")
	}

	switch c.Review.Backend {
	case "ollama", "llamacpp":
	default:
		return fmt.Errorf("review.backend must be ollama or llamacpp, got %q", c.Review.Backend)
	}

	switch strings.ToLower(c.Output.Format) {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("output.format must be png, jpg or webp, got %q", c.Output.Format)
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	return nil
}

// ShapeConfig converts the recognizer section into matcher thresholds
func (c *Config) ShapeConfig() shape.Config {
	r := c.Recognizer
	return shape.Config{
		ReferencePoints:   r.ReferencePoints,
		MinPoints:         r.MinPoints,
		ProximityRatio:    r.ProximityRatio,
		CoverageThreshold: r.CoverageThreshold,
		MinShapePoints:    r.MinShapePoints,
		MinAspectRatio:    r.MinAspectRatio,
		MaxAspectRatio:    r.MaxAspectRatio,
		MinSizeRatio:      r.MinSizeRatio,
		MaxScatterRatio:   r.MaxScatterRatio,
	}
}

// RenderConfig converts the render section into renderer options. Call
// Validate first; colours that fail to parse fall back to the defaults.
func (c *Config) RenderConfig() render.Config {
	rc := render.DefaultConfig()
	set := func(dst *color.NRGBA, hex string) {
		if parsed, err := render.ParseColor(hex); err == nil {
			*dst = parsed
		}
	}
	set(&rc.Background, c.Render.Background)
	set(&rc.Ink, c.Render.Ink)
	set(&rc.Guide, c.Render.Guide)
	set(&rc.Covered, c.Render.Covered)
	set(&rc.Crosshair, c.Render.Crosshair)
	rc.BackgroundPath = c.Render.BackgroundPath
	rc.StrokeSize = c.Render.StrokeSize
	rc.Thinning = c.Render.Thinning
	rc.ShowGuide = c.Render.ShowGuide
	rc.ShowCentroid = c.Render.ShowCentroid
	return rc
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(home, ".config", "heartcheck", "config.yaml")
}
