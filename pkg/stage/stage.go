// Package stage sequences the five parts of the card.
package stage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

// ExitDelay is how long the exit transition runs before the next stage enters
const ExitDelay = 100 * time.Millisecond

// Order lists the stages in the order they are played
var Order = []types.Stage{
	types.StageDrawHeart,
	types.StageTimeline,
	types.StageWriteWithMe,
	types.StageBuildMoment,
	types.StageTheQuestion,
}

// Transition is the animation phase between stages
type Transition string

const (
	TransitionIdle     Transition = "idle"
	TransitionExiting  Transition = "exiting"
	TransitionEntering Transition = "entering"
)

// Action drives the state machine
type Action int

const (
	BeginExit Action = iota
	Advance
	EnterComplete
)

func (a Action) String() string {
	switch a {
	case BeginExit:
		return "begin-exit"
	case Advance:
		return "advance"
	case EnterComplete:
		return "enter-complete"
	default:
		return "unknown"
	}
}

// State is the current stage and transition phase
type State struct {
	Current    types.Stage
	Transition Transition
}

// Initial returns the state the card starts in
func Initial() State {
	return State{Current: types.StageDrawHeart, Transition: TransitionIdle}
}

// Index returns the position of s in Order, or -1
func Index(s types.Stage) int {
	for i, o := range Order {
		if o == s {
			return i
		}
	}
	return -1
}

// Reduce applies an action. Advancing past the last stage stays there.
func Reduce(state State, action Action) State {
	switch action {
	case BeginExit:
		state.Transition = TransitionExiting
	case Advance:
		if i := Index(state.Current); i >= 0 && i+1 < len(Order) {
			state.Current = Order[i+1]
		}
		state.Transition = TransitionEntering
	case EnterComplete:
		state.Transition = TransitionIdle
	}
	return state
}

// Manager owns the stage state for one run of the card. It is safe for
// concurrent use.
type Manager struct {
	mu     sync.Mutex
	state  State
	delay  time.Duration
	logger *zap.Logger
}

// NewManager starts at the first stage
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{state: Initial(), delay: ExitDelay, logger: logger}
}

// SetExitDelay overrides the pause between exit and advance
func (m *Manager) SetExitDelay(d time.Duration) {
	m.mu.Lock()
	m.delay = d
	m.mu.Unlock()
}

// State returns the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the current stage
func (m *Manager) Current() types.Stage {
	return m.State().Current
}

// Dispatch applies an action and returns the new state
func (m *Manager) Dispatch(action Action) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.state
	m.state = Reduce(m.state, action)
	if prev.Current != m.state.Current {
		m.logger.Info("stage advanced",
			zap.String("from", string(prev.Current)),
			zap.String("to", string(m.state.Current)))
	}
	return m.state
}

// AdvanceStage begins the exit transition, waits for it and moves to the next
// stage. If ctx ends first the card stays on the exiting stage.
func (m *Manager) AdvanceStage(ctx context.Context) error {
	m.Dispatch(BeginExit)
	m.mu.Lock()
	delay := m.delay
	m.mu.Unlock()
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	m.Dispatch(Advance)
	return nil
}

// EnterComplete marks the entering animation as done
func (m *Manager) EnterComplete() {
	m.Dispatch(EnterComplete)
}

// Last reports whether the card is on its final stage
func (m *Manager) Last() bool {
	return Index(m.Current()) == len(Order)-1
}
