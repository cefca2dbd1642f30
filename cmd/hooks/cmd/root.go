// Package cmd implements the hooks CLI commands.
//
// The root command carries the global flags; run, history and version are
// its subcommands.
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/hooks/cmd/hooks/internal/config"
	engerrors "github.com/go-drift/hooks/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config  string
	Verbose bool

	logger *slog.Logger
}

// Logger returns the logger configured for the running command.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// resolve loads --config when given, otherwise hooks.yaml in the working
// directory if present.
func (o *RootOptions) resolve() (*config.Resolved, error) {
	if o.Config != "" {
		return config.ResolveFile(o.Config)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Resolve(dir)
}

// NewRootCommand creates the root command for the hooks CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "hooks - a hook-slot rendering engine",
		Long: `hooks runs components that keep their state in positional hook slots,
re-render on state changes and commit markup to a sink.

Use "hooks <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			opts.logger = slog.New(handler)
			engerrors.SetHandler(&engerrors.SlogHandler{Logger: opts.logger})
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to a hooks.yaml file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log engine trace at debug level")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}
