package demo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-drift/hooks/pkg/core"
	engerrors "github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/frame"
)

// DefaultMaxTicks bounds how many ticks Settle runs.
const DefaultMaxTicks = 100

// ErrNotSettled is returned when the engine still has work after MaxTicks.
var ErrNotSettled = errors.New("demo: session did not settle")

// Session runs a Counter on its own frame loop.
type Session struct {
	Counter *Counter
	Buttons *Buttons
	Loop    *frame.Loop
	Engine  *core.Engine

	// MaxTicks bounds Settle. Defaults to DefaultMaxTicks.
	MaxTicks int
}

// NewSession wires a Counter, its buttons, a frame loop and an engine
// committing to sink.
func NewSession(sink core.Sink, logf func(format string, args ...any), opts ...core.Option) *Session {
	buttons := NewButtons()
	counter := NewCounter(buttons, logf)
	loop := frame.NewLoop()
	return &Session{
		Counter:  counter,
		Buttons:  buttons,
		Loop:     loop,
		Engine:   core.New(counter.Render, sink, loop, opts...),
		MaxTicks: DefaultMaxTicks,
	}
}

// Start performs the first render and settles.
func (s *Session) Start() error {
	if err := s.Engine.Init(); err != nil {
		return err
	}
	return s.Settle()
}

// Settle steps the loop until no work is pending.
func (s *Session) Settle() error {
	maxTicks := s.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	settled, err := s.Loop.RunUntilIdle(maxTicks)
	if err != nil {
		return err
	}
	if !settled {
		return fmt.Errorf("%w after %d ticks", ErrNotSettled, maxTicks)
	}
	return nil
}

// Click clicks the named button and settles.
func (s *Session) Click(name string) error {
	if err := s.click(name); err != nil {
		return err
	}
	return s.Settle()
}

func (s *Session) click(name string) error {
	id, err := ButtonID(name)
	if err != nil {
		return err
	}
	return s.Buttons.Click(id)
}

// Play clicks each named button in turn.
func (s *Session) Play(clicks []string) error {
	for _, name := range clicks {
		if err := s.Click(name); err != nil {
			return fmt.Errorf("click %q: %w", name, err)
		}
	}
	return nil
}

// Live drives the loop on interval and reads one click name per line from
// in. It returns when in is exhausted or ctx is done. Clicks are dispatched
// onto the loop goroutine; a bad name is logged and skipped. A panic while
// reading is reported through errors.Recover and ends the session.
//
// The reading goroutine is not interrupted when ctx is done: it stays blocked
// in in.Read, holding the session, until in returns. This is fine when Live
// ends the process; other callers should pass a reader they can close.
func (s *Session) Live(ctx context.Context, in io.Reader, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer s.Loop.Dispatch(cancel)
		defer engerrors.Recover("demo.Session.Live")

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			name := strings.TrimSpace(scanner.Text())
			if name == "" {
				continue
			}
			s.Loop.Dispatch(func() {
				if err := s.click(name); err != nil {
					s.Counter.logf("click %q: %v", name, err)
				}
			})
		}
	}()

	if err := s.Loop.Run(ctx, interval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return s.Settle()
}

// Close disposes the engine.
func (s *Session) Close() {
	s.Engine.Dispose()
}
