package stage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

func TestReduce(t *testing.T) {
	s := Initial()
	assert.Equal(t, State{Current: types.StageDrawHeart, Transition: TransitionIdle}, s)

	s = Reduce(s, BeginExit)
	assert.Equal(t, TransitionExiting, s.Transition)
	assert.Equal(t, types.StageDrawHeart, s.Current)

	s = Reduce(s, Advance)
	assert.Equal(t, State{Current: types.StageTimeline, Transition: TransitionEntering}, s)

	s = Reduce(s, EnterComplete)
	assert.Equal(t, TransitionIdle, s.Transition)
}

func TestReduceLastStageIsTerminal(t *testing.T) {
	s := State{Current: types.StageTheQuestion, Transition: TransitionIdle}
	s = Reduce(s, Advance)
	assert.Equal(t, types.StageTheQuestion, s.Current)
	assert.Equal(t, TransitionEntering, s.Transition)
}

func TestReduceUnknownAction(t *testing.T) {
	s := Initial()
	assert.Equal(t, s, Reduce(s, Action(42)))
	assert.Equal(t, "unknown", Action(42).String())
	assert.Equal(t, "advance", Advance.String())
}

func TestManagerWalksAllStages(t *testing.T) {
	m := NewManager(nil)
	m.SetExitDelay(time.Millisecond)

	var seen []types.Stage
	seen = append(seen, m.Current())
	for !m.Last() {
		require.NoError(t, m.AdvanceStage(context.Background()))
		m.EnterComplete()
		seen = append(seen, m.Current())
	}
	assert.Equal(t, Order, seen)
	assert.Equal(t, TransitionIdle, m.State().Transition)
}

func TestManagerAdvanceCancelled(t *testing.T) {
	m := NewManager(nil)
	m.SetExitDelay(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.AdvanceStage(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, types.StageDrawHeart, m.Current())
	assert.Equal(t, TransitionExiting, m.State().Transition)
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index(types.StageDrawHeart))
	assert.Equal(t, 4, Index(types.StageTheQuestion))
	assert.Equal(t, -1, Index("nope"))
}
