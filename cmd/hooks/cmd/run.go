package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-drift/hooks/cmd/hooks/internal/config"
	"github.com/go-drift/hooks/cmd/hooks/internal/demo"
	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/sink"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Clicks []string
	Sink   string
	Output string
	Live   bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the Counter demo",
		Long: `Run the Counter demo component.

The session renders once, then clicks the buttons listed by --click (or
demo.clicks in hooks.yaml) and settles after each click. With --live the
frame loop runs on its interval and reads one button name per line from
standard input.

Example:
  hooks run --click one --click toggle
  hooks run --sink journal --output counter.db
  hooks run --live --sink terminal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Clicks, "click", nil, "button to click: one, two or toggle (repeatable)")
	cmd.Flags().StringVar(&opts.Sink, "sink", "", "sink kind: terminal, writer, file or journal")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "target path of the file or journal sink")
	cmd.Flags().BoolVar(&opts.Live, "live", false, "read clicks from standard input")

	return cmd
}

func runDemo(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	if opts.Sink != "" {
		cfg.SinkKind = opts.Sink
	}
	if opts.Output != "" {
		cfg.SinkPath = opts.Output
	}
	clicks := cfg.Clicks
	if len(opts.Clicks) > 0 {
		clicks = opts.Clicks
	}

	logger := opts.Logger().With("app", cfg.AppName)
	out, journal, closeSink, err := openSink(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeSink()

	session := demo.NewSession(out, func(format string, args ...any) {
		logger.Info(fmt.Sprintf(format, args...))
	}, core.WithCoalescing(cfg.Coalescing), core.WithDebug(cfg.Debug), core.WithLogger(logger))
	defer session.Close()
	if journal != nil {
		journal.Engine = session.Engine.ID()
	}

	logger.Info("session starting",
		"engine", session.Engine.ID(),
		"coalescing", cfg.Coalescing.String(),
		"sink", cfg.SinkKind,
		"config", cfg.Source,
	)
	if err := session.Start(); err != nil {
		return err
	}

	if opts.Live {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := session.Live(ctx, cmd.InOrStdin(), cfg.Interval); err != nil {
			return err
		}
	} else if err := session.Play(clicks); err != nil {
		return err
	}

	stats := session.Engine.Stats()
	logger.Info("session finished",
		"renders", stats.Renders,
		"commits", stats.Commits,
		"layout_effects", stats.LayoutEffectRuns,
		"effects", stats.EffectRuns,
	)
	return nil
}

// openSink builds the sink selected by cfg. The journal is returned
// separately so the caller can label its records.
func openSink(cfg *config.Resolved, stdout io.Writer) (core.Sink, *sink.Journal, func(), error) {
	noop := func() {}
	screen := func() core.Sink {
		if f, ok := stdout.(*os.File); ok {
			return sink.NewTerminal(f)
		}
		return sink.NewWriter(stdout)
	}

	switch cfg.SinkKind {
	case config.SinkTerminal:
		return screen(), nil, noop, nil
	case config.SinkWriter:
		return sink.NewWriter(stdout), nil, noop, nil
	case config.SinkFile:
		if cfg.SinkPath == "" {
			return nil, nil, nil, fmt.Errorf("the %s sink needs --output", cfg.SinkKind)
		}
		return sink.NewFile(cfg.SinkPath), nil, noop, nil
	case config.SinkJournal:
		path := cfg.SinkPath
		if path == "" {
			path = filepath.Join(cfg.Dir, cfg.AppName+".hooks.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, nil, err
		}
		j, err := sink.OpenJournal(path)
		if err != nil {
			return nil, nil, nil, err
		}
		return sink.Multi{screen(), j}, j, func() { j.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown sink kind %q", cfg.SinkKind)
	}
}
