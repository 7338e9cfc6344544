package review

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanceyyyy/balentayms/pkg/client"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

type fakeClient struct {
	raw        string
	err        error
	lastPrompt string
}

func (f *fakeClient) SimpleQuery(_ context.Context, _, prompt, _ string) (string, error) {
	f.lastPrompt = prompt
	return f.raw, f.err
}

func (f *fakeClient) ReviewDrawing(_ context.Context, _, prompt, _ string) (*types.ReviewResult, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return client.ParseReview(f.raw), nil
}

func TestReview(t *testing.T) {
	fc := &fakeClient{raw: `{"is_heart": true, "confidence": 1.7, "description": " a heart ", "tags": ["Heart", "heart", " Red ", "", "line", "sketch", "pink", "love"]}`}
	r := New(fc)

	got, err := r.Review(context.Background(), "llava", "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt, fc.lastPrompt)
	assert.True(t, got.IsHeart)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, "a heart", got.Description)
	if diff := cmp.Diff([]string{"heart", "red", "line", "sketch", "pink"}, got.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestReviewFallbackNeverClaimsHeart(t *testing.T) {
	fc := &fakeClient{raw: `{"is_heart": true, "confidence": -2, "description": "unclear sketch", "tags": []}`}
	got, err := New(fc).Review(context.Background(), "llava", "")
	require.NoError(t, err)
	assert.False(t, got.IsHeart)
	assert.Equal(t, 0.0, got.Confidence)

	fc.raw = "no idea"
	got, err = New(fc).Review(context.Background(), "llava", "")
	require.NoError(t, err)
	assert.False(t, got.IsHeart)
	assert.Contains(t, got.Tags, "fallback")
}

func TestReviewError(t *testing.T) {
	fc := &fakeClient{err: errors.New("connection refused")}
	_, err := New(fc).Review(context.Background(), "llava", "")
	assert.EqualError(t, err, "connection refused")
}

func TestTestVision(t *testing.T) {
	fc := &fakeClient{raw: "a pink heart"}
	out, err := New(fc).TestVision(context.Background(), "llava", "")
	require.NoError(t, err)
	assert.Equal(t, "a pink heart", out)
	assert.Equal(t, SimpleTestPrompt, fc.lastPrompt)
}

func TestNormalizeTags(t *testing.T) {
	assert.Empty(t, normalizeTags(nil))
	assert.Equal(t, []string{"a", "b"}, normalizeTags([]string{" A", "b", "a "}))
}
