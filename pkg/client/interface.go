package client

import (
	"context"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

// VisionClient is a vision model backend that can look at a rendered drawing
type VisionClient interface {
	SimpleQuery(ctx context.Context, model, prompt, imgB64 string) (string, error)
	ReviewDrawing(ctx context.Context, model, prompt, imgB64 string) (*types.ReviewResult, error)
}
