package core

import (
	"time"

	"github.com/go-drift/hooks/pkg/errors"
)

// DebugMode is the default for WithDebug. When true, every engine compares
// the number of hook calls of each kind with the previous render and reports
// a mismatch through errors.ReportHook.
var DebugMode = false

// SetDebugMode enables or disables the hook shape check for engines created
// afterwards.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// checkShape compares this render's hook call counts with the previous one.
func (e *Engine) checkShape() {
	defer func() { e.prevShape = e.shape }()
	if !e.debug || e.stats.Renders < 2 {
		return
	}
	for kind := hookKind(0); kind < numKinds; kind++ {
		if e.shape[kind] == e.prevShape[kind] {
			continue
		}
		errors.ReportHook(&errors.HookError{
			Hook:      kind.String(),
			Render:    e.stats.Renders,
			Want:      e.prevShape[kind],
			Got:       e.shape[kind],
			Timestamp: time.Now(),
		})
	}
}
