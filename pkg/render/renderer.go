package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lanceyyyy/balentayms/pkg/shape"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// Renderer draws captured strokes over the tracing guide
type Renderer struct {
	config  Config
	matcher *shape.Matcher
}

// Config holds rendering options
type Config struct {
	Background     color.NRGBA
	BackgroundPath string // optional image filled to the canvas size
	Ink            color.NRGBA
	Guide          color.NRGBA
	Covered        color.NRGBA // guide dots of covered sectors
	Crosshair      color.NRGBA
	StrokeSize     float64
	Thinning       float64
	ShowGuide      bool
	ShowCentroid   bool
}

// DefaultConfig returns the card's colours
func DefaultConfig() Config {
	return Config{
		Background:   color.NRGBA{26, 10, 20, 255},
		Ink:          color.NRGBA{220, 40, 80, 255},
		Guide:        color.NRGBA{255, 182, 193, 255},
		Covered:      color.NRGBA{255, 215, 0, 255},
		Crosshair:    color.NRGBA{0, 170, 255, 255},
		StrokeSize:   10,
		Thinning:     0.5,
		ShowGuide:    true,
		ShowCentroid: false,
	}
}

// New creates a Renderer with the default configuration
func New() *Renderer {
	return &Renderer{config: DefaultConfig(), matcher: shape.New()}
}

// NewWithConfig creates a Renderer. The matcher supplies the guide geometry;
// nil uses the default thresholds.
func NewWithConfig(config Config, matcher *shape.Matcher) *Renderer {
	if matcher == nil {
		matcher = shape.New()
	}
	return &Renderer{config: config, matcher: matcher}
}

// ParseColor parses "#rrggbb" into an opaque colour
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 255}, nil
}

// RenderDrawing paints a drawing. When result is non-nil the guide dots of
// covered sectors are highlighted.
func (r *Renderer) RenderDrawing(d types.Drawing, result *types.CoverageResult) (*image.NRGBA, error) {
	w := int(math.Ceil(d.Width))
	h := int(math.Ceil(d.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %gx%g", d.Width, d.Height)
	}

	bg, err := r.background(w, h)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContextForImage(bg)
	defer dc.Close()

	ref := r.matcher.Reference(d.Width, d.Height)
	if r.config.ShowGuide {
		dot := math.Max(2, 0.004*float64(min(w, h)))
		for i, p := range ref.Points {
			c := r.config.Guide
			if result != nil && result.CoveredSectors[ref.Sectors[i]] {
				c = r.config.Covered
			}
			dc.SetColor(c)
			dc.DrawCircle(p.X, p.Y, dot)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("failed to draw guide: %w", err)
			}
		}
	}

	for _, s := range d.Strokes {
		if err := drawStroke(dc, s.Points, r.config.StrokeSize, r.config.Thinning, r.config.Ink); err != nil {
			return nil, err
		}
	}

	canvas := imaging.Clone(dc.Image())
	if r.config.ShowCentroid {
		cross := int(math.Max(4, 0.01*float64(min(w, h))))
		px := int(ref.Centroid.X + 0.5)
		py := int(ref.Centroid.Y + 0.5)
		drawHLine(canvas, py, px-cross, px+cross, r.config.Crosshair)
		drawVLine(canvas, px, py-cross, py+cross, r.config.Crosshair)
	}

	return canvas, nil
}

func (r *Renderer) background(w, h int) (*image.NRGBA, error) {
	if r.config.BackgroundPath == "" {
		return imaging.New(w, h, r.config.Background), nil
	}
	bg, err := LoadImage(r.config.BackgroundPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load background: %w", err)
	}
	return imaging.Fill(bg, w, h, imaging.Center, imaging.Lanczos), nil
}

// blend composites c over the pixel at (x, y)
func blend(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return
	}
	i := img.PixOffset(x, y)
	if c.A == 255 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 255
		return
	}
	a := float64(c.A) / 255
	mix := func(dst, src uint8) uint8 {
		return uint8(float64(src)*a + float64(dst)*(1-a) + 0.5)
	}
	img.Pix[i+0] = mix(img.Pix[i+0], c.R)
	img.Pix[i+1] = mix(img.Pix[i+1], c.G)
	img.Pix[i+2] = mix(img.Pix[i+2], c.B)
	img.Pix[i+3] = uint8(math.Min(255, float64(img.Pix[i+3])+float64(c.A)*(1-float64(img.Pix[i+3])/255)))
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x < x1; x++ {
		blend(img, x, y, c)
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y < y1; y++ {
		blend(img, x, y, c)
	}
}
