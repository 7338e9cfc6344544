// Package pad is a terminal drawing surface for the heart card. Mouse cells
// are mapped to canvas pixels so the recognizer sees the same geometry a
// browser canvas would.
package pad

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lanceyyyy/balentayms/pkg/capture"
	"github.com/lanceyyyy/balentayms/pkg/shape"
	"github.com/lanceyyyy/balentayms/pkg/stage"
	"github.com/lanceyyyy/balentayms/pkg/types"
)

const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	headerLines = 2
	footerLines = 3
)

var stageTitles = map[types.Stage]string{
	types.StageDrawHeart:   "Draw me a heart",
	types.StageTimeline:    "Our timeline",
	types.StageWriteWithMe: "Write with me",
	types.StageBuildMoment: "Building the moment",
	types.StageTheQuestion: "The question",
}

// Options configure a pad
type Options struct {
	Matcher    *shape.Matcher
	CellWidth  int
	CellHeight int
	ExitDelay  time.Duration
	Logger     *zap.Logger
	Clock      func() time.Time
}

type cell struct{ col, row int }

// advancedMsg reports that the stage manager finished moving on
type advancedMsg struct{ err error }

// Model is the bubbletea model of the pad
type Model struct {
	session *capture.Session
	scratch *capture.Canvas // free drawing in later stages
	stages  *stage.Manager
	matcher *shape.Matcher

	progress progress.Model
	styles   Styles

	cellW, cellH int
	cols, rows   int
	guide        map[cell]int // reference sector per guide cell

	start     time.Time
	clock     func() time.Time
	advancing bool
	quitting  bool
}

// New creates a pad. The canvas size follows the terminal size.
func New(opts Options) Model {
	if opts.Matcher == nil {
		opts.Matcher = shape.New()
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	stages := stage.NewManager(opts.Logger)
	if opts.ExitDelay > 0 {
		stages.SetExitDelay(opts.ExitDelay)
	}

	m := Model{
		session:  capture.NewSession(opts.Matcher, 0, 0, capture.WithLogger(opts.Logger)),
		scratch:  capture.NewCanvas(0, 0),
		stages:   stages,
		matcher:  opts.Matcher,
		progress: progress.New(progress.WithDefaultGradient()),
		styles:   DefaultStyles(),
		cellW:    opts.CellWidth,
		cellH:    opts.CellHeight,
		clock:    opts.Clock,
		start:    opts.Clock(),
	}
	m.resize(80, 24)
	return m
}

// Session returns the capture session behind the pad
func (m Model) Session() *capture.Session {
	return m.session
}

// Stage returns the current stage
func (m Model) Stage() types.Stage {
	return m.stages.Current()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.Stage() == types.StageDrawHeart {
				m.session.Reset()
			}
			m.scratch.Clear()
		case "enter":
			if m.Stage() != types.StageDrawHeart && m.Stage() != types.StageWriteWithMe {
				return m.advance()
			}
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case advancedMsg:
		m.advancing = false
		if msg.err == nil {
			m.stages.EnterComplete()
			m.scratch.Clear()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ts := float64(m.clock().Sub(m.start)) / float64(time.Millisecond)
	p, ok := m.toCanvas(msg.X, msg.Y)

	switch m.Stage() {
	case types.StageDrawHeart:
		switch msg.Action {
		case tea.MouseActionPress:
			if ok && msg.Button == tea.MouseButtonLeft {
				p.Timestamp = ts
				m.session.Down(p)
			}
		case tea.MouseActionMotion:
			if ok {
				p.Timestamp = ts
				m.session.Move(p)
			}
		case tea.MouseActionRelease:
			m.session.Up(ts)
		}
		if m.session.Complete() {
			return m.advance()
		}

	case types.StageWriteWithMe:
		switch msg.Action {
		case tea.MouseActionPress:
			if ok && msg.Button == tea.MouseButtonLeft {
				p.Timestamp = ts
				m.scratch.PointerDown(p)
			}
		case tea.MouseActionMotion:
			if ok {
				p.Timestamp = ts
				m.scratch.PointerMove(p)
			}
		case tea.MouseActionRelease:
			// Any stroke is accepted here.
			if m.scratch.PointerUp() {
				return m.advance()
			}
		}
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.advancing || m.stages.Last() || m.stages.State().Transition != stage.TransitionIdle {
		return m, nil
	}
	m.advancing = true
	mgr := m.stages
	return m, func() tea.Msg {
		return advancedMsg{err: mgr.AdvanceStage(context.Background())}
	}
}

func (m *Model) resize(width, height int) {
	m.cols = max(width, 1)
	m.rows = max(height-headerLines-footerLines, 1)
	w := float64(m.cols * m.cellW)
	h := float64(m.rows * m.cellH)
	m.session.Resize(w, h)
	m.scratch.Resize(w, h)
	m.progress.Width = max(width-4, 10)

	ref := m.matcher.Reference(w, h)
	m.guide = make(map[cell]int, len(ref.Points))
	for i, p := range ref.Points {
		m.guide[m.cellOf(p)] = ref.Sectors[i]
	}
}

// toCanvas maps a terminal cell to the pixel at its centre. Cells outside the
// drawing area report false.
func (m Model) toCanvas(x, y int) (types.StrokePoint, bool) {
	row := y - headerLines
	if x < 0 || x >= m.cols || row < 0 || row >= m.rows {
		return types.StrokePoint{}, false
	}
	return types.StrokePoint{
		X:           (float64(x) + 0.5) * float64(m.cellW),
		Y:           (float64(row) + 0.5) * float64(m.cellH),
		Pressure:    capture.DefaultPressure,
		PointerType: types.PointerMouse,
	}, true
}

func (m Model) cellOf(p types.Point) cell {
	return cell{col: int(p.X) / m.cellW, row: int(p.Y) / m.cellH}
}

// Message returns the status line for the current stage
func (m Model) Message() string {
	if m.Stage() != types.StageDrawHeart {
		switch {
		case m.stages.Last():
			return "press q to finish"
		case m.Stage() == types.StageWriteWithMe:
			return "draw anything to continue"
		default:
			return "press enter to continue"
		}
	}

	r := m.session.Result()
	switch r.Feedback {
	case types.FeedbackComplete:
		return "Beautiful!"
	case types.FeedbackIdle:
		return "trace the dotted heart"
	}
	switch {
	case r.CoveragePercentage < 50:
		return "keep going..."
	case r.CoveragePercentage < 80:
		return "almost there!"
	default:
		return "just a bit more..."
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	title := stageTitles[m.Stage()]
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("♥ %s", title)))
	sb.WriteString("\n\n")

	var ink map[cell]bool
	result := m.session.Result()
	showGuide := m.Stage() == types.StageDrawHeart
	if showGuide {
		ink = m.inkCells(m.session.Canvas().AllPoints())
	} else {
		ink = m.inkCells(m.scratch.AllPoints())
	}

	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			c := cell{col, row}
			switch sector, isGuide := m.guide[c]; {
			case ink[c]:
				sb.WriteString(m.styles.Ink.Render("█"))
			case showGuide && isGuide && result.CoveredSectors[sector]:
				sb.WriteString(m.styles.Covered.Render("•"))
			case showGuide && isGuide:
				sb.WriteString(m.styles.Guide.Render("·"))
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	if showGuide {
		sb.WriteString(m.progress.ViewAs(result.CoveragePercentage / 100))
	}
	sb.WriteByte('\n')
	if result.IsComplete && showGuide {
		sb.WriteString(m.styles.Success.Render(m.Message()))
	} else {
		sb.WriteString(m.styles.Message.Render(m.Message()))
	}
	sb.WriteByte('\n')
	sb.WriteString(m.styles.Muted.Render("r: clear  q: quit"))
	return sb.String()
}

func (m Model) inkCells(points []types.Point) map[cell]bool {
	out := make(map[cell]bool, len(points))
	for _, p := range points {
		out[m.cellOf(p)] = true
	}
	return out
}

// Run starts the pad full screen with mouse tracking and blocks until the
// user quits. The final drawing is returned.
func Run(ctx context.Context, opts Options) (types.Drawing, error) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return types.Drawing{}, fmt.Errorf("drawing pad: %w", err)
	}
	return m.session.Canvas().Snapshot(), nil
}
