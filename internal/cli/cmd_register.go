// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/settings"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// newRegisterCmd creates the register command
func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name>",
		Short: "Add a hook to settings.json",
		Long: `Add a hook's command to settings.json under its event, with a matcher
built from its tools. Registering twice does nothing.

Disabled hooks can be registered: the host runs the stub until the hook
is enabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			name := args[0]
			d, ok := a.reg.Lookup(name)
			if !ok {
				return withSuggestions(a, &herrors.HookError{
					Code: herrors.CodeHookNotFound,
					What: fmt.Sprintf("hook %s is not in the registry", name),
					Why:  "Only registry hooks have a known event and tool matcher",
					Fix:  "Scaffold it with 'claude-hooks create', or edit settings.json by hand",
				}, name)
			}

			sf, err := settings.Load(a.cfg.SettingsPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !sf.Register(d, a.command(name)) {
				printf(out, "%s is already registered in %s\n", name, sf.Path())
				return nil
			}
			if err := sf.Save(); err != nil {
				return err
			}
			if !quiet {
				printf(out, "%s registered %s for %s (%s)\n", ui.Success.Render(ui.IconPass), name, d.Event, matcherLabel(d))
			}
			return nil
		},
	}
}

// newUnregisterCmd creates the unregister command
func newUnregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <name>",
		Short: "Remove a hook from settings.json",
		Long:  `Remove every settings.json entry that runs the hook. The hook's files are left alone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			name := args[0]
			sf, err := settings.Load(a.cfg.SettingsPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			n := sf.Unregister(a.svc.Paths(name).Active)
			if n == 0 {
				_, _ = fmt.Fprintf(out, "%s is not registered in %s\n", name, sf.Path())
				return nil
			}
			if err := sf.Save(); err != nil {
				return err
			}
			if !quiet {
				printf(out, "%s unregistered %s (%d entr%s)\n", ui.Success.Render(ui.IconPass), name, n, plural(n, "y", "ies"))
			}
			return nil
		},
	}
}
