package sink

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// File replaces the contents of a file on every commit. The write goes to a
// temporary file that is synced and renamed over the target, so readers
// never observe partial markup.
type File struct {
	path string
	perm os.FileMode
}

// NewFile creates a file sink writing to path.
func NewFile(path string) *File {
	return &File{path: path, perm: 0o644}
}

// Path returns the target path.
func (f *File) Path() string { return f.path }

// Commit atomically replaces the file contents with markup.
func (f *File) Commit(markup string) error {
	if err := renameio.WriteFile(f.path, []byte(markup), f.perm); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}
