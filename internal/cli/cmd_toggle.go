// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// newEnableCmd creates the enable command
func newEnableCmd() *cobra.Command {
	return newToggleCmd("enable", "Restore a disabled hook",
		`Move the original implementation back to the active path, replacing the
stub. Hooks disabled by older releases (<name>.py.disabled) are restored
too. Enabling an active hook does nothing and exits 0.`,
		"enabled",
		func(ctx context.Context, a *app, name string) error { return a.svc.Enable(ctx, name) })
}

// newDisableCmd creates the disable command
func newDisableCmd() *cobra.Command {
	return newToggleCmd("disable", "Replace a hook with a no-op stub",
		`Move the hook to <name>.py.original and put a stub at <name>.py that
reads its input, notes that it is disabled on stderr and exits 0. The
settings.json registration is left alone, so the host keeps finding a
script at the registered path. Disabling a disabled hook does nothing and
exits 0.`,
		"disabled",
		func(ctx context.Context, a *app, name string) error { return a.svc.Disable(ctx, name) })
}

func newToggleCmd(use, short, long, done string, run func(context.Context, *app, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			name := args[0]
			if err := run(ctx, a, name); err != nil {
				return withSuggestions(a, err, name)
			}
			if !quiet {
				printf(cmd.OutOrStdout(), "%s %s %s\n", ui.Success.Render(ui.IconPass), name, done)
			}
			if st, err := a.svc.Status(name); err == nil && st.Problem != "" {
				printf(cmd.ErrOrStderr(), "%s %s\n", ui.Warning.Render(ui.IconWarn), st.Problem)
				if st.Files.LegacyExists {
					printf(cmd.ErrOrStderr(), "  Delete %s once you no longer need it\n", st.Paths.Legacy)
				}
			}
			return nil
		},
	}
}
