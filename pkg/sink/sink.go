// Package sink provides render sinks: destinations that make committed
// markup visible. Every commit replaces what the previous commit showed.
package sink

import (
	"errors"
	"io"
	"sync"
)

// Func adapts a function to a sink.
type Func func(markup string) error

// Commit calls f(markup).
func (f Func) Commit(markup string) error { return f(markup) }

// Writer writes each commit to an io.Writer followed by Separator.
type Writer struct {
	mu  sync.Mutex
	out io.Writer

	// Separator is written after every commit. Defaults to "\n".
	Separator string
}

// NewWriter creates a Writer sink.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, Separator: "\n"}
}

// Commit writes markup and the separator.
func (w *Writer) Commit(markup string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.out, markup); err != nil {
		return err
	}
	_, err := io.WriteString(w.out, w.Separator)
	return err
}

// Committer is the method set shared by every sink.
type Committer interface {
	Commit(markup string) error
}

// Multi fans each commit out to several sinks, in order. All sinks are
// attempted; their errors are joined.
type Multi []Committer

// Commit forwards markup to every sink.
func (m Multi) Commit(markup string) error {
	var errs []error
	for _, s := range m {
		if err := s.Commit(markup); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
