package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestEngineErrorString(t *testing.T) {
	err := &EngineError{
		Op:   "core.Engine.Render",
		Kind: KindRender,
		Err:  fmt.Errorf("boom"),
	}
	got := err.Error()
	want := "core.Engine.Render [render]: boom"
	if got != want {
		t.Errorf("EngineError.Error() = %q, want %q", got, want)
	}
}

func TestEngineErrorWithIndex(t *testing.T) {
	err := &EngineError{
		Op:    "core.UseEffect",
		Kind:  KindEffect,
		Index: 2,
		Err:   fmt.Errorf("boom"),
	}
	want := "index=2"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestEngineErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := &EngineError{Op: "op", Kind: KindCommit, Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInit, "init"},
		{KindRender, "render"},
		{KindCommit, "commit"},
		{KindLayoutEffect, "layout-effect"},
		{KindEffect, "effect"},
		{KindHookShape, "hook-shape"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "frame.Loop.Step",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in frame.Loop.Step: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	if (&PanicError{Value: inner}).Unwrap() != inner {
		t.Error("Unwrap should return an error panic value")
	}
	if (&PanicError{Value: 42}).Unwrap() != nil {
		t.Error("Unwrap should return nil for non-error panic values")
	}
}

func TestHookErrorString(t *testing.T) {
	err := &HookError{Hook: "state", Render: 3, Want: 2, Got: 3}
	want := "render 3 called state hooks 3 times, previous render called them 2 times"
	if got := err.Error(); got != want {
		t.Errorf("HookError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *EngineError
	handler := &testHandler{
		onError: func(err *EngineError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&EngineError{
		Op:   "test.op",
		Kind: KindInit,
		Err:  fmt.Errorf("failed"),
	})

	if capturedErr == nil {
		t.Fatal("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportPanic(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportPanic(&PanicError{
		Value:     "test panic value",
		Timestamp: time.Now(),
	})

	if capturedPanic == nil {
		t.Fatal("expected panic to be captured")
	}
	if capturedPanic.Value != "test panic value" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "test panic value")
	}
}

func TestReportHook(t *testing.T) {
	var captured *HookError
	handler := &testHandler{
		onHook: func(err *HookError) {
			captured = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportHook(&HookError{Hook: "callback", Render: 2, Want: 1, Got: 0})

	if captured == nil {
		t.Fatal("expected hook error to be captured")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportAny(t *testing.T) {
	var errs []*EngineError
	var panics []*PanicError
	var hooks []*HookError
	handler := &testHandler{
		onError: func(err *EngineError) { errs = append(errs, err) },
		onPanic: func(err *PanicError) { panics = append(panics, err) },
		onHook:  func(err *HookError) { hooks = append(hooks, err) },
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportAny("op", KindEffect, nil)
	ReportAny("op", KindEffect, fmt.Errorf("plain"))
	ReportAny("op", KindEffect, &PanicError{Value: "p"})
	ReportAny("op", KindEffect, &HookError{Hook: "state"})
	ReportAny("op", KindEffect, &EngineError{Op: "inner", Kind: KindCommit})

	if len(errs) != 2 || len(panics) != 1 || len(hooks) != 1 {
		t.Fatalf("got %d errors, %d panics, %d hook errors", len(errs), len(panics), len(hooks))
	}
	if errs[0].Op != "op" || errs[0].Kind != KindEffect {
		t.Errorf("plain error wrapped as %+v", errs[0])
	}
	if errs[1].Op != "inner" {
		t.Errorf("EngineError should be reported as is, got Op %q", errs[1].Op)
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if DefaultHandler == nil {
		t.Error("SetHandler(nil) should set default LogHandler, not nil")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleError(&EngineError{Op: "core.Engine.Render", Kind: KindRender, Err: fmt.Errorf("boom")})
	h.HandlePanic(&PanicError{Op: "frame.Loop.Step", Value: "p"})
	h.HandleHookError(&HookError{Hook: "state", Render: 2, Want: 1, Got: 2})

	want := "[hooks error] core.Engine.Render: boom\n" +
		"[hooks panic] frame.Loop.Step: p\n" +
		"[hooks shape] render 2 called state hooks 2 times, previous render called them 1 times\n"
	if got := buf.String(); got != want {
		t.Errorf("LogHandler output = %q, want %q", got, want)
	}
}

func TestSlogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := &SlogHandler{Logger: logger}

	h.HandleError(&EngineError{Op: "core.UseEffect", Kind: KindEffect, Index: 1, Err: fmt.Errorf("boom")})
	out := buf.String()
	for _, want := range []string{"level=ERROR", "op=core.UseEffect", "kind=effect", "index=1", "err=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output %q should contain %q", out, want)
		}
	}

	buf.Reset()
	h.HandleHookError(&HookError{Hook: "callback", Render: 4, Want: 3, Got: 2})
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "hook=callback") {
		t.Errorf("unexpected hook record %q", out)
	}
}

type testHandler struct {
	onError func(*EngineError)
	onPanic func(*PanicError)
	onHook  func(*HookError)
}

func (h *testHandler) HandleError(err *EngineError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleHookError(err *HookError) {
	if h.onHook != nil {
		h.onHook(err)
	}
}
