// Package errors provides structured error handling for the hooks engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates a failure during the first render.
	KindInit
	// KindRender indicates a failure while invoking the component.
	KindRender
	// KindCommit indicates the render sink rejected markup.
	KindCommit
	// KindLayoutEffect indicates a layout effect callback failed.
	KindLayoutEffect
	// KindEffect indicates a deferred effect callback failed.
	KindEffect
	// KindHookShape indicates a component changed its hook call shape.
	KindHookShape
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindCommit:
		return "commit"
	case KindLayoutEffect:
		return "layout-effect"
	case KindEffect:
		return "effect"
	case KindHookShape:
		return "hook-shape"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// EngineError represents a structured error raised by an engine.
type EngineError struct {
	// Op is the operation that failed (e.g., "core.Engine.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Engine identifies the engine instance, if applicable.
	Engine string
	// Index is the effect slot involved. Only meaningful for effect kinds.
	Index int
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EngineError) Error() string {
	if e.Kind == KindEffect || e.Kind == KindLayoutEffect {
		return fmt.Sprintf("%s [%s] index=%d: %v", e.Op, e.Kind, e.Index, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "frame.Loop.Step").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// HookError describes a hook call shape that differs from the previous render.
// It is only produced in debug mode.
type HookError struct {
	// Hook is the hook kind ("state", "layout-effect", "effect", "callback").
	Hook string
	// Render is the render number in which the mismatch was observed.
	Render int
	// Want is the number of calls made in the previous render.
	Want int
	// Got is the number of calls made in this render.
	Got int
	// Timestamp is when the mismatch was observed.
	Timestamp time.Time
}

func (e *HookError) Error() string {
	return fmt.Sprintf("render %d called %s hooks %d times, previous render called them %d times", e.Render, e.Hook, e.Got, e.Want)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *EngineError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleHookError is called when a hook shape mismatch is detected.
	HandleHookError(err *HookError)
}
