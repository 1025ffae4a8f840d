// Package cli implements the evbus command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sergheevdev/event-bus/internal/config"
)

// state is filled in by the root PersistentPreRunE and read by subcommands.
type state struct {
	configPath string
	cfg        config.Config
	log        zerolog.Logger
}

// Run executes the command tree with args, writing command output to out and
// logs to errOut. It returns an error instead of exiting.
func Run(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := buildRootCmd(&state{})
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

// Main runs the command tree on the process arguments and exits non-zero on
// failure.
func Main() {
	if err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func buildRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "evbus",
		Short:         "In-process event bus: demo runs and an introspection API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> config.Config; flags win over the config file
	root.PersistentFlags().StringVar(&st.configPath, "config", config.DefaultPath(), "Config file (.yaml, .yml, .json or .toml; defaults to EVBUS_CONFIG)")
	root.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: trace|debug|info|warn|error|disabled")
	root.PersistentFlags().Bool("concurrent", false, "Use the lock-guarded manager")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if st.configPath != "" {
			loaded, err := config.Load(st.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
		}
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
			cfg.LogLevel = f.Value.String()
		}
		if f := cmd.Flags().Lookup("concurrent"); f != nil && f.Changed {
			cfg.Concurrent = f.Value.String() == "true"
		}
		cfg = cfg.WithDefaults()
		lvl, err := cfg.Level()
		if err != nil {
			return err
		}
		st.cfg = cfg
		st.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
			Level(lvl).With().Timestamp().Logger()
		return nil
	}

	root.AddCommand(demoCmd(st), serveCmd(st))
	return root
}
