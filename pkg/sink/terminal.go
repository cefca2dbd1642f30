package sink

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// clearScreen moves the cursor home and clears the display.
const clearScreen = "\x1b[H\x1b[2J"

// Terminal writes each commit to a file, clearing the screen first when the
// file is a terminal so that only the latest markup is visible.
type Terminal struct {
	out   io.Writer
	isTTY bool
}

// NewTerminal creates a terminal sink over f.
func NewTerminal(f *os.File) *Terminal {
	fd := f.Fd()
	return &Terminal{
		out:   f,
		isTTY: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// IsTTY reports whether the sink clears the screen between commits.
func (t *Terminal) IsTTY() bool { return t.isTTY }

// Commit writes markup, replacing the previous output on a terminal.
func (t *Terminal) Commit(markup string) error {
	if t.isTTY {
		if _, err := io.WriteString(t.out, clearScreen); err != nil {
			return err
		}
	}
	_, err := io.WriteString(t.out, markup+"\n")
	return err
}
