package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/hooks/pkg/sink"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Last bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [journal]",
		Short: "Print the commits stored in a journal",
		Long: `Print the commits stored in a journal written by "hooks run --sink journal".

Without an argument the journal configured in hooks.yaml is read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return printHistory(cmd, opts, path)
		},
	}

	cmd.Flags().BoolVar(&opts.Last, "last", false, "print only the latest commit")

	return cmd
}

func printHistory(cmd *cobra.Command, opts *HistoryOptions, path string) error {
	if path == "" {
		cfg, err := opts.resolve()
		if err != nil {
			return err
		}
		path = cfg.SinkPath
		if path == "" {
			path = filepath.Join(cfg.Dir, cfg.AppName+".hooks.db")
		}
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no journal at %s: %w", path, err)
	}
	j, err := sink.OpenJournal(path)
	if err != nil {
		return err
	}
	defer j.Close()

	var records []sink.Record
	if opts.Last {
		r, err := j.Last()
		if err != nil {
			return err
		}
		records = []sink.Record{r}
	} else {
		records, err = j.Records()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range records {
		fmt.Fprintf(out, "#%d %s engine=%s\n%s\n", r.Seq, r.Time.UTC().Format(time.RFC3339), r.Engine, r.Markup)
	}
	opts.Logger().Debug("history printed", "journal", path, "records", len(records))
	return nil
}
