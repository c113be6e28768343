// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/claude-hooks/internal/config"
	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	jsonOut bool
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "claude-hooks",
		Short: "Manage Claude Code hook scripts",
		Long: `claude-hooks installs, enables, disables and removes the Python hook
scripts Claude Code runs around tool calls, and registers them in
~/.claude/settings.json.

Disabling a hook keeps a small stub at its path so Claude Code never fails
to find a registered script; the real implementation is kept next to it
as <name>.py.original until the hook is enabled again.

Quick start:
  claude-hooks list --all              Show every known hook
  claude-hooks install secret-scanner  Copy a hook into ~/.claude/hooks
  claude-hooks disable secret-scanner  Turn it off without unregistering
  claude-hooks enable secret-scanner   Turn it back on
  claude-hooks status                  Check the hooks directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.Setup(cmd.OutOrStdout())
			return initConfig(cmd.ErrOrStderr())
		},
	}

	// Global flags
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.claude-hooks/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&jsonOut, "json", false, "output as JSON")
	pf.String("hooks-dir", "", "hooks directory (default ~/.claude/hooks)")
	pf.String("settings", "", "Claude Code settings file (default ~/.claude/settings.json)")
	_ = viper.BindPFlag(config.KeyHooksDir, pf.Lookup("hooks-dir"))
	_ = viper.BindPFlag(config.KeySettingsPath, pf.Lookup("settings"))

	// Add subcommands
	root.AddCommand(newListCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newEnableCmd())
	root.AddCommand(newDisableCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newInstallCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newTestCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newUnregisterCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI and prints any error. The returned error, if any,
// maps to the process exit status through ExitCode.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		PrintError(root.ErrOrStderr(), err)
	}
	return err
}

// initConfig reads in config file and ENV variables if set.
func initConfig(stderr io.Writer) error {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME/" + config.ConfigDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return herrors.ErrConfigInvalid("config file", err.Error())
	}
	newLogger(stderr).Debug("using config file", "path", viper.ConfigFileUsed())
	return nil
}

// newLogger returns the logger handed to services. Diagnostics go to w at
// Warn, or Debug with --verbose; --quiet discards them.
func newLogger(w io.Writer) *slog.Logger {
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
