// Package review asks a vision model for a second opinion on a drawing.
// The answer is advisory and never changes the geometric coverage result.
package review

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/pkg/client"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

// SimpleTestPrompt checks that the model can see images at all
const SimpleTestPrompt = `What do you see in this image? Describe it briefly.`

// DefaultPrompt asks for a strict JSON verdict on the drawing
const DefaultPrompt = `You are judging a hand-drawn sketch.

Return JSON only:
{
  "is_heart": false,
  "confidence": 0.0,
  "description": "short neutral sentence (≤ 20 words)",
  "tags": ["tag1", "tag2", "tag3"]
}

HARD RULES
- "is_heart" is true only if the ink forms a closed heart outline: two rounded lobes at the top meeting in a dip, tapering to a single point at the bottom.
- Faint dotted guide lines are not ink. Judge only the dark strokes.
- "confidence" is a number in [0,1].
- Description must be brief and factual.
- Tags: lowercase, concise, no punctuation or duplicates, at most 5.
- If the canvas is empty, return:
  {"is_heart":false,"confidence":0.0,"description":"empty canvas","tags":["empty"]}
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

// MaxTags caps the number of tags kept from a model answer
const MaxTags = 5

// fallbackIndicators mark answers that came from the parse fallback or
// describe an unusable image
var fallbackIndicators = []string{"fallback", "parse-error", "non-json", "unclear", "empty canvas"}

// Reviewer sends rendered drawings to a vision model
type Reviewer struct {
	client client.VisionClient
	logger *zap.Logger
}

// New creates a reviewer backed by the given vision client
func New(c client.VisionClient) *Reviewer {
	return &Reviewer{client: c, logger: zap.NewNop()}
}

// SetLogger replaces the reviewer's logger
func (r *Reviewer) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger = logger
}

// Review asks the model whether the base64 image is a heart
func (r *Reviewer) Review(ctx context.Context, model, imageB64 string) (*types.ReviewResult, error) {
	return r.ReviewWithPrompt(ctx, model, imageB64, DefaultPrompt)
}

// ReviewWithPrompt is Review with a caller-supplied prompt
func (r *Reviewer) ReviewWithPrompt(ctx context.Context, model, imageB64, prompt string) (*types.ReviewResult, error) {
	result, err := r.client.ReviewDrawing(ctx, model, prompt, imageB64)
	if err != nil {
		r.logger.Warn("review failed", zap.String("model", model), zap.Error(err))
		return nil, err
	}

	result = validateAndAdjust(result)
	r.logger.Debug("review complete",
		zap.String("model", model),
		zap.Bool("is_heart", result.IsHeart),
		zap.Float64("confidence", result.Confidence),
		zap.Strings("tags", result.Tags))
	return result, nil
}

// TestVision checks that the model can see the image with a plain prompt
func (r *Reviewer) TestVision(ctx context.Context, model, imageB64 string) (string, error) {
	return r.client.SimpleQuery(ctx, model, SimpleTestPrompt, imageB64)
}

func validateAndAdjust(result *types.ReviewResult) *types.ReviewResult {
	result.Confidence = clamp(result.Confidence, 0, 1)
	result.Description = strings.TrimSpace(result.Description)
	result.Tags = normalizeTags(result.Tags)

	// A fallback answer must never claim a heart.
	desc := strings.ToLower(result.Description)
	for _, indicator := range fallbackIndicators {
		if strings.Contains(desc, indicator) || containsTag(result.Tags, indicator) {
			result.IsHeart = false
			break
		}
	}
	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// normalizeTags lower-cases, trims, and de-duplicates tags, keeping at most MaxTags
func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, MaxTags)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
