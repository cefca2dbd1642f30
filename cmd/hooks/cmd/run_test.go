package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hooks/pkg/sink"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	for _, name := range []string{"click", "sink", "output", "live"} {
		assert.NotNil(t, run.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "o", run.Flags().Lookup("output").Shorthand)
}

func TestRunWriterSink(t *testing.T) {
	path := writeConfig(t, "app:\n  name: counter\nsink:\n  kind: writer\n")

	stdout, stderr, err := execute(t, "run", "--config", path, "--click", "one", "--click", "two", "--click", "two")
	require.NoError(t, err)

	commits := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n<button id=\"button-one\"")
	assert.Len(t, commits, 5, "initial, settled and one commit per click")
	assert.Contains(t, stdout, "Update Count One 1")
	assert.Contains(t, stdout, "Update Count Two 2")
	assert.Contains(t, stderr, "session finished")
	assert.Contains(t, stderr, "app=counter")
	assert.NotContains(t, stderr, "level=DEBUG")
}

func TestRunVerboseLogsEngineTrace(t *testing.T) {
	path := writeConfig(t, "sink:\n  kind: writer\n")

	_, stderr, err := execute(t, "run", "-c", path, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "msg=\"commit skipped\"")
}

func TestRunScriptFromConfig(t *testing.T) {
	path := writeConfig(t, "sink:\n  kind: writer\ndemo:\n  clicks: [one, one, one]\n")

	stdout, _, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Update Count One 3")
}

func TestRunUnknownClick(t *testing.T) {
	path := writeConfig(t, "sink:\n  kind: writer\n")

	_, _, err := execute(t, "run", "--config", path, "--click", "three")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "three")
}

func TestRunUnknownSinkOverride(t *testing.T) {
	path := writeConfig(t, "")

	_, _, err := execute(t, "run", "--config", path, "--sink", "printer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer")
}

func TestRunFileSink(t *testing.T) {
	path := writeConfig(t, "sink:\n  kind: file\n  path: out.html\n")

	stdout, _, err := execute(t, "run", "--config", path, "--click", "toggle")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "out.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "background-color: blue")
	assert.True(t, strings.HasPrefix(string(data), "<button"))
}

func TestRunJournalAndHistory(t *testing.T) {
	path := writeConfig(t, "app:\n  name: demo\nsink:\n  kind: journal\n")
	journal := filepath.Join(filepath.Dir(path), "demo.hooks.db")

	stdout, _, err := execute(t, "run", "--config", path, "--click", "one")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Update Count One 1")

	j, err := sink.OpenJournal(journal)
	require.NoError(t, err)
	records, err := j.Records()
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.Len(t, records, 3)
	assert.NotEmpty(t, records[0].Engine)
	assert.Equal(t, records[0].Engine, records[2].Engine)

	history, _, err := execute(t, "history", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(history, "engine="+records[0].Engine))
	assert.True(t, strings.HasPrefix(history, "#1 "))

	last, _, err := execute(t, "history", journal, "--last")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(last, "#3 "))
	assert.Contains(t, last, "Update Count One 1")
}

func TestHistoryMissingJournal(t *testing.T) {
	_, _, err := execute(t, "history", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err) || strings.Contains(err.Error(), "no journal"))
}
