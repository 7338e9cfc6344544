package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanceyyyy/balentayms/pkg/capture"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

func drawing(width float64) types.Drawing {
	return types.Drawing{
		Width:  width,
		Height: 600,
		Strokes: []types.Stroke{{Points: []types.StrokePoint{
			{X: 1, Y: 1, Pressure: 0.5, PointerType: types.PointerMouse},
			{X: 2, Y: 2, Pressure: 0.5, PointerType: types.PointerMouse},
		}}},
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heart.json")
	require.NoError(t, capture.SaveDrawing(path, drawing(800)))

	got := make(chan types.Drawing, 8)
	w, err := New(path, func(_ string, d types.Drawing) { got <- d }, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case d := <-got:
		assert.Equal(t, 800.0, d.Width)
	case <-time.After(2 * time.Second):
		t.Fatal("initial load not delivered")
	}

	require.NoError(t, capture.SaveDrawing(path, drawing(1024)))

	// Writers may produce several events; wait for the new content.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case d := <-got:
			if d.Width == 1024 {
				cancel()
				require.NoError(t, <-done)
				assert.GreaterOrEqual(t, w.Stats().Reloads, 2)
				return
			}
		case <-deadline:
			cancel()
			t.Fatal("reload not delivered")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heart.json")

	calls := make(chan struct{}, 1)
	w, err := New(path, func(string, types.Drawing) { calls <- struct{}{} }, nil)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644)
	}()
	require.NoError(t, w.Run(ctx))

	assert.Empty(t, calls)
	assert.Equal(t, 0, w.Stats().Events)
}

func TestWatcherCountsBadReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heart.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	w, err := New(path, func(string, types.Drawing) { t.Error("handler called for bad file") }, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	assert.Equal(t, 1, w.Stats().Errors)
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "heart.json"), func(string, types.Drawing) {}, nil)
	assert.Error(t, err)
}
