package core

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/frame"
)

var (
	// ErrAlreadyInitialized is returned by Init when called more than once.
	ErrAlreadyInitialized = stderrors.New("core: engine already initialized")
	// ErrNotInitialized is returned by Render before Init.
	ErrNotInitialized = stderrors.New("core: engine not initialized")
	// ErrDisposed is returned by Init and Render after Dispose.
	ErrDisposed = stderrors.New("core: engine disposed")
)

// Component renders markup. It must call hooks in a stable order.
type Component func(h *Hooks) string

// Sink makes committed markup visible. Each commit replaces the previous one.
type Sink interface {
	Commit(markup string) error
}

// Stats counts what an engine has done so far.
type Stats struct {
	Renders          int
	Commits          int
	LayoutEffectRuns int
	EffectRuns       int
}

// Option configures an Engine.
type Option func(*Engine)

// WithCoalescing selects the re-render coalescing strategy.
func WithCoalescing(c Coalescing) Option {
	return func(e *Engine) { e.scheduler.strategy = c }
}

// WithDebug enables or disables the hook shape check.
func WithDebug(debug bool) Option {
	return func(e *Engine) { e.debug = debug }
}

// WithLogger sets the logger receiving debug-level trace records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine runs one component against one sink, threading hook state across
// renders. Its lifecycle is New, Init, any number of renders, Dispose.
//
// Engine is NOT thread-safe. Init, Render, Dispose and every setter must run
// on the goroutine that drives the frame clock.
type Engine struct {
	id        string
	component Component
	sink      Sink
	clock     frame.Clock
	hooks     *Hooks
	logger    *slog.Logger
	debug     bool

	slots       slotStore
	layoutQueue []func() error
	scheduler   renderScheduler
	effectTicks map[frame.Handle]struct{}

	shape     [numKinds]int
	prevShape [numKinds]int

	stats       Stats
	initialized bool
	disposed    bool
}

// New creates an engine. Nothing is rendered until Init.
func New(component Component, sink Sink, clock frame.Clock, opts ...Option) *Engine {
	e := &Engine{
		id:          uuid.NewString(),
		component:   component,
		sink:        sink,
		clock:       clock,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		debug:       DebugMode,
		effectTicks: make(map[frame.Handle]struct{}),
	}
	e.hooks = &Hooks{engine: e}
	e.scheduler = renderScheduler{clock: clock, render: e.Render}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string { return e.id }

// Stats returns the engine's counters.
func (e *Engine) Stats() Stats { return e.stats }

// Init performs the first render.
func (e *Engine) Init() error {
	if e.disposed {
		return ErrDisposed
	}
	if e.initialized {
		return ErrAlreadyInitialized
	}
	e.initialized = true
	return e.render(true)
}

// Render performs a subsequent render. Setters call it from a frame tick.
func (e *Engine) Render() error {
	if e.disposed {
		return ErrDisposed
	}
	if !e.initialized {
		return ErrNotInitialized
	}
	return e.render(false)
}

// render invokes the component, drains the layout effects it queued and
// decides whether to commit. The first render commits after the drain; a
// later render that queued layout effects drains them without committing and
// the previous markup stays visible.
func (e *Engine) render(isInit bool) error {
	e.slots.resetCounters()
	e.layoutQueue = nil
	e.shape = [numKinds]int{}
	e.stats.Renders++
	e.logger.Debug("render", "engine", e.id, "render", e.stats.Renders, "init", isInit)

	markup := e.component(e.hooks)
	e.checkShape()

	queue := e.layoutQueue
	if len(queue) == 0 {
		return e.commit(markup)
	}
	if err := e.drain(queue); err != nil {
		return err
	}
	if isInit {
		return e.commit(markup)
	}
	e.logger.Debug("commit skipped", "engine", e.id, "render", e.stats.Renders, "layout_effects", len(queue))
	return nil
}

func (e *Engine) drain(queue []func() error) error {
	for _, run := range queue {
		if err := run(); err != nil {
			return err
		}
	}
	e.logger.Debug("layout effects drained", "engine", e.id, "render", e.stats.Renders, "count", len(queue))
	return nil
}

func (e *Engine) commit(markup string) error {
	if e.sink == nil {
		return nil
	}
	if err := e.sink.Commit(markup); err != nil {
		return &errors.EngineError{
			Op:     "core.Engine.commit",
			Kind:   errors.KindCommit,
			Engine: e.id,
			Err:    fmt.Errorf("render %d: %w", e.stats.Renders, err),
		}
	}
	e.stats.Commits++
	e.logger.Debug("commit", "engine", e.id, "render", e.stats.Renders, "bytes", len(markup))
	return nil
}

// Dispose cancels every pending render and effect tick, runs the cached
// cleanups and turns setters into no-ops. Deferred effect cleanups run
// first, then layout effect cleanups, each from the highest slot down.
// Dispose is idempotent.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.scheduler.cancelAll()
	for h := range e.effectTicks {
		e.clock.Cancel(h)
		delete(e.effectTicks, h)
	}
	for _, kind := range []hookKind{kindEffect, kindLayoutEffect} {
		for i := e.slots.len(kind) - 1; i >= 0; i-- {
			s := e.slots.get(kind, i)
			if s.cleanup != nil {
				cleanup := s.cleanup
				s.cleanup = nil
				cleanup()
			}
		}
	}
	e.layoutQueue = nil
	e.logger.Debug("disposed", "engine", e.id, "renders", e.stats.Renders)
}

// IsDisposed returns true once Dispose has been called.
func (e *Engine) IsDisposed() bool { return e.disposed }
