// Package cli wires the codep commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/jh3/codep/internal/config"
	"github.com/jh3/codep/internal/logging"
)

var version = "dev"

// SetVersion sets the version printed by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// app carries the state every command resolves once before running.
type app struct {
	configRoot     string
	nullTerminated bool
	logLevel       string

	cfg  *config.Config
	root string
}

// NewRootCmd builds the codep command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "codep",
		Version: version,
		Short:   "List recent editor folders, files and remote workspaces",
		Long: `codep reads the state VS Code keeps on disk and prints recently opened
folders, files and remote workspaces, one per line, for shell scripts,
launchers and fuzzy finders.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logging.Sync()
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configRoot, "config-root", "c", "", "editor config directory (default: $"+config.RootEnv+" or <user config dir>/Code)")
	flags.BoolVarP(&a.nullTerminated, "null-terminated", "0", false, "terminate every line with NUL before the newline")
	flags.StringVar(&a.logLevel, "log-level", "", "diagnostics level: debug, info, warn or error")

	cmd.AddCommand(
		newRecentCmd(a),
		newWorkspacesCmd(a),
		newHistoryCmd(a),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = a.logLevel
	}
	if err := logging.Init(logging.Config{Level: level, Format: cfg.LogFormat}); err != nil {
		return err
	}

	root, err := config.ResolveRoot(a.configRoot, cfg)
	if err != nil {
		return err
	}
	a.root = root

	if !cmd.Flags().Changed("null-terminated") {
		a.nullTerminated = cfg.NullTerminated
	}
	logging.S().Debugw("using editor state", "root", root)
	return nil
}
