// Package session implements the typing test state machine.
package session

import (
	"fmt"

	"github.com/verte-zerg/typee/internal/generator"
	"github.com/verte-zerg/typee/internal/layout"
	"github.com/verte-zerg/typee/internal/model"
	"github.com/verte-zerg/typee/internal/stats"
)

// State is the lifecycle phase of a test.
type State int

const (
	// Idle: sequence generated, countdown not started.
	Idle State = iota
	// Running: countdown active.
	Running
	// Finished: stats computed; input and ticks are ignored.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures a test.
type Options struct {
	Words     int
	TimeLimit int
	LineWidth int
}

// Session owns one typing test: its word sequence, countdown and input.
type Session struct {
	gen  *generator.Generator
	pool []string
	opts Options

	words  []string
	target []rune
	lines  []layout.Line

	input      []rune
	remaining  int
	state      State
	stats      model.Stats
	generation uint64
}

// New validates opts and generates the first sequence.
func New(gen *generator.Generator, pool []string, opts Options) (*Session, error) {
	if opts.TimeLimit <= 0 {
		return nil, fmt.Errorf("%w: time limit must be > 0, got %d", generator.ErrInvalidConfiguration, opts.TimeLimit)
	}
	if opts.LineWidth <= 0 {
		return nil, fmt.Errorf("%w: line width must be > 0, got %d", generator.ErrInvalidConfiguration, opts.LineWidth)
	}
	s := &Session{gen: gen, pool: pool, opts: opts}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart discards the current test and generates a new one. The generation
// counter advances so countdowns bound to the previous test can be told apart.
func (s *Session) Restart() error {
	words, err := s.gen.Sample(s.pool, s.opts.Words)
	if err != nil {
		return err
	}
	s.words = words
	s.target = []rune(layout.Target(words))
	s.lines = layout.Layout(words, s.opts.LineWidth)
	s.input = nil
	s.remaining = s.opts.TimeLimit
	s.state = Idle
	s.stats = model.Stats{}
	s.generation++
	return nil
}

// SetInput replaces the raw input with the widget's full current value. It
// reports true only on the Idle to Running transition, which is when the
// caller must start the countdown.
func (s *Session) SetInput(value string) bool {
	if s.state == Finished {
		return false
	}
	s.input = []rune(value)
	if s.state == Idle && len(s.input) > 0 {
		s.state = Running
		return true
	}
	return false
}

// Tick advances the countdown by one second. It reports true when this tick
// finished the test.
func (s *Session) Tick() bool {
	if s.state != Running {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.finish()
		return true
	}
	return false
}

func (s *Session) finish() {
	s.state = Finished
	s.stats = stats.Compute(s.target, s.input, s.opts.TimeLimit, s.remaining)
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Generation identifies the current test; it changes on every Restart.
func (s *Session) Generation() uint64 { return s.generation }

// Words returns the generated sequence.
func (s *Session) Words() []string { return s.words }

// Lines returns the display lines of the sequence.
func (s *Session) Lines() []layout.Line { return s.lines }

// Target returns the flattened sequence.
func (s *Session) Target() []rune { return s.target }

// Input returns the raw input.
func (s *Session) Input() []rune { return s.input }

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int { return s.remaining }

// TimeLimit returns the configured limit in seconds.
func (s *Session) TimeLimit() int { return s.opts.TimeLimit }

// Stats returns the final stats; zero until the test finishes.
func (s *Session) Stats() model.Stats { return s.stats }

// ActiveLine returns the index of the line holding the caret.
func (s *Session) ActiveLine() int {
	return layout.ActiveLineIndex(s.lines, len(s.input))
}
