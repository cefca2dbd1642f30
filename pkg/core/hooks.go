package core

import (
	"time"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/frame"
)

// Hooks is the capability object handed to a component on every render.
// Hook functions take it as their first argument and must be called in the
// same order and the same number of times on every render: the call position
// is the hook's only identity.
type Hooks struct {
	engine *Engine
}

// Render returns the number of the render in progress, starting at 1.
func (h *Hooks) Render() int {
	return h.engine.stats.Renders
}

// UseState returns the value stored at this call position and its setter.
// The first call for a position seeds the slot with initial; later calls
// ignore initial.
//
// Example:
//
//	func Counter(h *core.Hooks) string {
//	    count, setCount := core.UseState(h, 0)
//	    onClick := core.UseCallback(h, func() {
//	        setCount.Update(func(n int) int { return n + 1 })
//	    }, core.Deps())
//	    bindClick(onClick)
//	    return fmt.Sprintf("<p>%d</p>", count)
//	}
func UseState[T any](h *Hooks, initial T) (T, *Setter[T]) {
	e := h.engine
	e.shape[kindState]++
	index := e.slots.next(kindState)
	s := e.slots.get(kindState, index)
	if !s.hasValue {
		s.value = initial
		s.hasValue = true
	}
	setter, ok := s.setter.(*Setter[T])
	if !ok {
		setter = &Setter[T]{engine: e, index: index}
		s.setter = setter
	}
	value, _ := s.value.(T)
	return value, setter
}

// Setter replaces the value of one state slot and requests a re-render.
// The pointer returned by UseState for a given position is stable across
// renders.
//
// Setter is NOT thread-safe. It must only be called from the frame loop
// goroutine; use frame.Loop.Dispatch from other goroutines.
type Setter[T any] struct {
	engine *Engine
	index  int
}

// Set stores value and requests a re-render.
func (s *Setter[T]) Set(value T) {
	s.apply(func(T) T { return value })
}

// Update stores transform(current) and requests a re-render.
func (s *Setter[T]) Update(transform func(T) T) {
	s.apply(transform)
}

func (s *Setter[T]) apply(transform func(T) T) {
	e := s.engine
	if e.disposed {
		return
	}
	slot := e.slots.get(kindState, s.index)
	current, _ := slot.value.(T)
	slot.value = transform(current)
	slot.hasValue = true
	e.scheduler.request(s.index)
}

// Cleanup is returned by an effect and runs before the effect's next run.
type Cleanup func()

// Effect is a side effect. A nil Cleanup means there is nothing to undo.
type Effect func() (Cleanup, error)

// UseLayoutEffect declares an effect that runs synchronously after the
// component returns and before the engine decides whether to commit.
//
// deps controls re-runs: nil runs the effect on every render, an empty list
// (Deps()) runs it once and never again, any other list runs it when an
// element differs from the previous run.
func UseLayoutEffect(h *Hooks, effect Effect, deps []any) {
	e := h.engine
	e.shape[kindLayoutEffect]++
	index := e.slots.next(kindLayoutEffect)
	if run := e.decide(kindLayoutEffect, index, effect, deps); run != nil {
		e.layoutQueue = append(e.layoutQueue, run)
	}
}

// UseEffect declares an effect that is decided and run on the next frame
// tick, independently of the render that declared it. deps has the same
// meaning as for UseLayoutEffect.
//
// The effect's call position is taken when its tick fires, not when
// UseEffect is called. A render that runs between the declaring render and
// that tick resets the position counter, so effects of two renders can
// interleave and land in each other's slots.
func UseEffect(h *Hooks, effect Effect, deps []any) {
	e := h.engine
	e.shape[kindEffect]++
	var handle frame.Handle
	handle = e.clock.Request(func(time.Time) error {
		delete(e.effectTicks, handle)
		if e.disposed {
			return nil
		}
		index := e.slots.next(kindEffect)
		if run := e.decide(kindEffect, index, effect, deps); run != nil {
			return run()
		}
		return nil
	})
	e.effectTicks[handle] = struct{}{}
}

// UseCallback returns a memoized fn. When deps is a list equal to the one
// given on the previous render, the function cached then is returned and the
// fresh fn is discarded. Otherwise fn is cached and returned.
func UseCallback[F any](h *Hooks, fn F, deps []any) F {
	e := h.engine
	e.shape[kindCallback]++
	index := e.slots.next(kindCallback)
	s := e.slots.get(kindCallback, index)

	changed := s.deps.state != depsRecorded || (deps != nil && depsChanged(s.deps.list, deps))
	s.deps = recordDeps(deps)

	if deps != nil && !changed && s.hasFn {
		if cached, ok := s.fn.(F); ok {
			return cached
		}
	}
	s.fn = fn
	s.hasFn = true
	return fn
}

// decide applies the dependency rules of an effect slot and returns the run
// to execute, or nil when the effect is skipped.
func (e *Engine) decide(kind hookKind, index int, effect Effect, deps []any) func() error {
	s := e.slots.get(kind, index)
	switch {
	case s.deps.state == depsTerminal:
		return nil
	case deps != nil && len(deps) == 0:
		s.deps = depRecord{state: depsTerminal}
	case s.deps.state == depsAbsent, deps == nil, depsChanged(s.deps.list, deps):
		s.deps = recordDeps(deps)
	default:
		return nil
	}
	return func() error { return e.runEffect(kind, index, effect) }
}

// runEffect runs the previous cleanup of the slot, then the effect, and
// caches the cleanup it returns.
func (e *Engine) runEffect(kind hookKind, index int, effect Effect) error {
	s := e.slots.get(kind, index)
	if cleanup := s.cleanup; cleanup != nil {
		s.cleanup = nil
		cleanup()
	}
	if effect == nil {
		return nil
	}
	e.logger.Debug("effect run", "engine", e.id, "kind", kind.String(), "index", index)
	if kind == kindEffect {
		e.stats.EffectRuns++
	} else {
		e.stats.LayoutEffectRuns++
	}
	cleanup, err := effect()
	if err != nil {
		errKind := errors.KindEffect
		if kind == kindLayoutEffect {
			errKind = errors.KindLayoutEffect
		}
		return &errors.EngineError{
			Op:     "core." + opName(kind),
			Kind:   errKind,
			Engine: e.id,
			Index:  index,
			Err:    err,
		}
	}
	s.cleanup = cleanup
	return nil
}

func opName(kind hookKind) string {
	if kind == kindLayoutEffect {
		return "UseLayoutEffect"
	}
	return "UseEffect"
}
