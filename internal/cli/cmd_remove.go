// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/registry"
	"github.com/randalmurphal/claude-hooks/internal/settings"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// newRemoveCmd creates the remove command
func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a hook's files",
		Long: `Delete every file belonging to a hook: the active script, the
.original backup and any legacy .disabled file.

The hook stays registered in settings.json unless --unregister is given;
a registered command whose script is gone makes the host report an error.
Hooks made with 'create' are also dropped from the overlay registry.

Example:
  claude-hooks remove old-hook --yes --unregister`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			name := args[0]
			yes, _ := cmd.Flags().GetBool("yes")
			unregister, _ := cmd.Flags().GetBool("unregister")

			st, err := a.svc.Status(name)
			if err != nil {
				return err
			}
			if st.State == hooks.StateAbsent {
				return withSuggestions(a, herrors.ErrHookNotFound(name, a.svc.Dir()), name)
			}

			if !yes {
				if !ui.IsInputTerminal(cmd.InOrStdin()) {
					return herrors.ErrConfirmationRequired("remove " + name)
				}
				if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Delete all files of %s? [y/N] ", name)) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			removed, err := a.svc.Remove(ctx, name)
			out := cmd.OutOrStdout()
			if !quiet {
				for _, path := range removed {
					printf(out, "  removed %s\n", path)
				}
			}
			if err != nil {
				return err
			}

			if unregister {
				sf, err := settings.Load(a.cfg.SettingsPath)
				if err != nil {
					return err
				}
				if n := sf.Unregister(st.Paths.Active); n > 0 {
					if err := sf.Save(); err != nil {
						return err
					}
					if !quiet {
						printf(out, "  unregistered %d entr%s from %s\n", n, plural(n, "y", "ies"), sf.Path())
					}
				}
			}

			if a.reg.Source(name) == a.cfg.RegistryPath {
				dropped, err := registry.RemoveOverlay(a.cfg.RegistryPath, name)
				if err != nil {
					return herrors.ErrRegistryInvalid(a.cfg.RegistryPath, err.Error())
				}
				if dropped && !quiet {
					printf(out, "  dropped %s from %s\n", name, a.cfg.RegistryPath)
				}
			}

			if !quiet {
				printf(out, "%s %s removed\n", ui.Success.Render(ui.IconPass), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().Bool("unregister", false, "also remove the hook from settings.json")
	return cmd
}

// confirm asks question on w and reports whether the answer starts with y.
func confirm(r io.Reader, w io.Writer, question string) bool {
	_, _ = fmt.Fprint(w, question)
	response, _ := bufio.NewReader(r).ReadString('\n')
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(response)), "y")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
