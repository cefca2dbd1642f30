// Package frame provides the frame clock that drives the hooks engine.
//
// A frame clock hands out one callback slot per request and runs every
// requested callback on the next tick, in request order. Callbacks requested
// while a tick is running wait for the following tick. A pending callback can
// be cancelled by its handle until it runs, including from an earlier
// callback of the same tick.
//
// [Loop] is the concrete clock. It can be stepped manually with [Loop.Step],
// which is how tests drive it, or run on a fixed interval with [Loop.Run].
package frame

import (
	"context"
	"errors"
	"sync"
	"time"

	engerrors "github.com/go-drift/hooks/pkg/errors"
)

// DefaultInterval is the tick interval used by Run when none is given.
const DefaultInterval = 16 * time.Millisecond

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Callback is invoked on a tick with the tick's timestamp.
type Callback func(now time.Time) error

// Clock schedules callbacks onto the next tick.
type Clock interface {
	// Request schedules cb for the next tick and returns its handle.
	Request(cb Callback) Handle
	// Cancel prevents a pending callback from running. Unknown or already
	// fired handles are ignored.
	Cancel(h Handle)
}

type entry struct {
	handle    Handle
	cb        Callback
	cancelled bool
}

// Loop is a single-threaded frame clock.
//
// Request, Cancel and Dispatch are safe to call from any goroutine. Step and
// Run must only be called from the goroutine that owns the loop.
type Loop struct {
	mu       sync.Mutex
	next     Handle
	pending  []*entry
	byHandle map[Handle]*entry
	dispatch []func()
	ticks    uint64
	running  bool

	// OnError receives the error returned by Step while Run is driving the
	// loop. Defaults to reporting through the errors package.
	OnError func(error)
}

// ErrLoopRunning is returned when Run is called on a loop that is already running.
var ErrLoopRunning = errors.New("frame: loop is already running")

// NewLoop creates an idle loop. The zero Loop is also ready to use.
func NewLoop() *Loop {
	return &Loop{byHandle: make(map[Handle]*entry)}
}

// Request schedules cb for the next tick.
func (l *Loop) Request(cb Callback) Handle {
	l.mu.Lock()
	if l.byHandle == nil {
		l.byHandle = make(map[Handle]*entry)
	}
	l.next++
	e := &entry{handle: l.next, cb: cb}
	l.pending = append(l.pending, e)
	l.byHandle[e.handle] = e
	l.mu.Unlock()
	return e.handle
}

// Cancel prevents the callback identified by h from running.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.byHandle[h]
	if !ok {
		return
	}
	e.cancelled = true
	delete(l.byHandle, h)
}

// Dispatch schedules fn to run on the loop goroutine at the start of the next
// tick and is safe to call from any goroutine.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.dispatch = append(l.dispatch, fn)
	l.mu.Unlock()
}

// Pending returns the number of callbacks waiting for the next tick.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byHandle)
}

// NeedsTick reports whether a tick would do any work.
func (l *Loop) NeedsTick() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byHandle) > 0 || len(l.dispatch) > 0
}

// Ticks returns the number of ticks run so far.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// Step runs one tick: dispatched functions first, then every callback that
// was pending when the tick began. A panicking callback is converted to an
// *errors.PanicError and the remaining callbacks still run. The returned
// error joins every callback failure of the tick.
func (l *Loop) Step() error {
	l.mu.Lock()
	dispatched := l.dispatch
	l.dispatch = nil
	batch := l.pending
	l.pending = nil
	l.ticks++
	l.mu.Unlock()

	var errs []error
	for _, fn := range dispatched {
		if err := invoke(func(time.Time) error { fn(); return nil }, time.Time{}); err != nil {
			errs = append(errs, err)
		}
	}

	now := Now()
	for _, e := range batch {
		l.mu.Lock()
		skip := e.cancelled
		delete(l.byHandle, e.handle)
		l.mu.Unlock()
		if skip || e.cb == nil {
			continue
		}
		if err := invoke(e.cb, now); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func invoke(cb Callback, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &engerrors.PanicError{
				Op:         "frame.Loop.Step",
				Value:      r,
				StackTrace: engerrors.CaptureStack(),
				Timestamp:  time.Now(),
			}
		}
	}()
	return cb(now)
}

// Run drives the loop on a fixed interval until ctx is done. Ticks with no
// pending work are skipped. Errors from a tick go to OnError and do not stop
// the loop.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if !l.NeedsTick() {
			continue
		}
		if err := l.Step(); err != nil {
			l.reportError(err)
		}
	}
}

// RunUntilIdle steps the loop until no work is pending or maxTicks ticks have
// run. It returns the joined errors of every tick and whether the loop settled.
func (l *Loop) RunUntilIdle(maxTicks int) (bool, error) {
	var errs []error
	for i := 0; i < maxTicks; i++ {
		if !l.NeedsTick() {
			return true, errors.Join(errs...)
		}
		if err := l.Step(); err != nil {
			errs = append(errs, err)
		}
	}
	return !l.NeedsTick(), errors.Join(errs...)
}

func (l *Loop) reportError(err error) {
	if l.OnError != nil {
		l.OnError(err)
		return
	}
	type unwrapper interface{ Unwrap() []error }
	if joined, ok := err.(unwrapper); ok {
		for _, e := range joined.Unwrap() {
			engerrors.ReportAny("frame.Loop.Run", engerrors.KindUnknown, e)
		}
		return
	}
	engerrors.ReportAny("frame.Loop.Run", engerrors.KindUnknown, err)
}
