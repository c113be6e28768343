// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// newEditCmd creates the edit command
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name>",
		Short: "Open a hook in your editor",
		Long: `Open the file holding a hook's implementation in $VISUAL or $EDITOR
(or the editor config key). For a disabled hook this is the .original
backup, never the stub.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			name := args[0]

			path, state, err := a.svc.EditablePath(name)
			if err != nil {
				return withSuggestions(a, err, name)
			}

			editor := strings.Fields(a.cfg.Editor)
			if len(editor) == 0 {
				return herrors.ErrEditorMissing()
			}
			if state == hooks.StateDisabled && !quiet {
				printf(cmd.ErrOrStderr(), "%s %s is disabled; editing the original at %s\n",
					ui.Info.Render(ui.IconWarn), name, path)
			}

			c := exec.CommandContext(cmd.Context(), editor[0], append(editor[1:], path)...)
			c.Stdin = cmd.InOrStdin()
			c.Stdout = cmd.OutOrStdout()
			c.Stderr = cmd.ErrOrStderr()
			if err := c.Run(); err != nil {
				return herrors.Wrap(err, "editor "+editor[0]+" failed")
			}
			return nil
		},
	}
}
