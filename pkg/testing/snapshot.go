package testing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where golden transcripts live, relative to the test's package.
const GoldenDir = "testdata/golden"

// Transcript accumulates a line-oriented log of what a test observed, for
// comparison against a golden file.
type Transcript struct {
	lines []string
}

// Logf appends a formatted line.
func (tr *Transcript) Logf(format string, args ...any) {
	tr.lines = append(tr.lines, fmt.Sprintf(format, args...))
}

// Commits appends one line per commit of s, numbered from 1.
func (tr *Transcript) Commits(s *RecordingSink) {
	for i, c := range s.commits {
		tr.Logf("commit %d: %s", i+1, strings.Join(strings.Fields(c), " "))
	}
}

// String returns the transcript with a trailing newline.
func (tr *Transcript) String() string {
	if len(tr.lines) == 0 {
		return ""
	}
	return strings.Join(tr.lines, "\n") + "\n"
}

// MatchesGolden compares data with GoldenDir/name.golden. Run the test with
// -update to rewrite the file.
func MatchesGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
	g.Assert(t, name, data)
}
