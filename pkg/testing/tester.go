package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/frame"
)

// FrameDuration is how far each Pump advances the fake clock.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: engine did not settle")

// EngineTester drives an engine with a manually stepped frame loop, a fake
// clock and a recording sink.
type EngineTester struct {
	loop       *frame.Loop
	clock      *FakeClock
	prevSource frame.TimeSource
	sink       *RecordingSink
	engine     *core.Engine
}

// NewEngineTester creates a tester for component. Call Cleanup() when done,
// or use NewEngineTesterWithT() instead.
func NewEngineTester(component core.Component, opts ...core.Option) *EngineTester {
	clk := NewFakeClock()
	t := &EngineTester{
		loop:  frame.NewLoop(),
		clock: clk,
		sink:  &RecordingSink{},
	}
	t.prevSource = frame.SetTimeSource(clk)
	t.engine = core.New(component, t.sink, t.loop, opts...)
	return t
}

// NewEngineTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewEngineTesterWithT(t testing.TB, component core.Component, opts ...core.Option) *EngineTester {
	tester := NewEngineTester(component, opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup disposes the engine and restores the frame time source.
func (t *EngineTester) Cleanup() {
	t.engine.Dispose()
	frame.SetTimeSource(t.prevSource)
}

// Engine returns the engine under test.
func (t *EngineTester) Engine() *core.Engine { return t.engine }

// Sink returns the recording sink.
func (t *EngineTester) Sink() *RecordingSink { return t.sink }

// Loop returns the frame loop.
func (t *EngineTester) Loop() *frame.Loop { return t.loop }

// Clock returns the fake clock for inspecting or advancing time.
func (t *EngineTester) Clock() *FakeClock { return t.clock }

// Init performs the engine's first render.
func (t *EngineTester) Init() error {
	return t.engine.Init()
}

// Pump advances the clock by one frame and runs one tick.
func (t *EngineTester) Pump() error {
	t.clock.Advance(FrameDuration)
	return t.loop.Step()
}

// PumpN runs n ticks and returns the joined errors.
func (t *EngineTester) PumpN(n int) error {
	var errs []error
	for i := 0; i < n; i++ {
		if err := t.Pump(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PumpAndSettle runs ticks until nothing is pending or the simulated
// timeout is reached. Returns ErrSettleTimeout if the engine does not settle,
// or the first tick error.
func (t *EngineTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for t.loop.NeedsTick() {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		if err := t.Pump(); err != nil {
			return err
		}
		elapsed += FrameDuration
	}
	return nil
}

// Dispatch queues fn for the next tick, mirroring frame.Loop.Dispatch.
func (t *EngineTester) Dispatch(fn func()) {
	t.loop.Dispatch(fn)
}
