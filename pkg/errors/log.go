package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that writes errors as plain text.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out receives the output. Defaults to os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs an EngineError.
func (h *LogHandler) HandleError(err *EngineError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[hooks error] %s [%s]", err.Op, err.Kind)
		if err.Engine != "" {
			fmt.Fprintf(w, " engine=%s", err.Engine)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[hooks error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[hooks panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[hooks panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleHookError logs a HookError.
func (h *LogHandler) HandleHookError(err *HookError) {
	if err == nil {
		return
	}
	fmt.Fprintf(h.out(), "[hooks shape] %s\n", err.Error())
}

// SlogHandler is an ErrorHandler that emits structured records.
type SlogHandler struct {
	// Logger receives the records. Defaults to slog.Default().
	Logger *slog.Logger
}

func (h *SlogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs an EngineError at error level.
func (h *SlogHandler) HandleError(err *EngineError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.Any("err", err.Err),
	}
	if err.Engine != "" {
		attrs = append(attrs, slog.String("engine", err.Engine))
	}
	if err.Kind == KindEffect || err.Kind == KindLayoutEffect {
		attrs = append(attrs, slog.Int("index", err.Index))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "engine error", attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *SlogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "recovered panic",
		slog.String("op", err.Op),
		slog.Any("value", err.Value),
		slog.String("stack", err.StackTrace),
	)
}

// HandleHookError logs a HookError at warn level.
func (h *SlogHandler) HandleHookError(err *HookError) {
	if err == nil {
		return
	}
	h.logger().LogAttrs(context.Background(), slog.LevelWarn, "hook shape changed",
		slog.String("hook", err.Hook),
		slog.Int("render", err.Render),
		slog.Int("want", err.Want),
		slog.Int("got", err.Got),
	)
}
