// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/claude-hooks/internal/registry"
	"github.com/randalmurphal/claude-hooks/internal/settings"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// newCreateCmd creates the create command
func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Scaffold a new hook",
		Long: `Write a new hook script to the hooks directory and add it to the
overlay registry (registry_path) so list, info and register know about it.

Example:
  claude-hooks create block-rm-rf --event PreToolUse --tools Bash \
    --description "Refuse rm -rf on the home directory" --register`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			event, _ := cmd.Flags().GetString("event")
			tools, _ := cmd.Flags().GetStringSlice("tools")
			description, _ := cmd.Flags().GetString("description")
			register, _ := cmd.Flags().GetBool("register")

			d := registry.Descriptor{
				Name:        args[0],
				Event:       registry.Event(event),
				Tools:       tools,
				Description: description,
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			path, err := a.svc.Create(ctx, d, a.cfg.RegistryPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !quiet {
				printf(out, "%s created %s\n", ui.Success.Render(ui.IconPass), path)
			}

			if register {
				sf, err := settings.Load(a.cfg.SettingsPath)
				if err != nil {
					return err
				}
				if sf.Register(d, a.command(d.Name)) {
					if err := sf.Save(); err != nil {
						return err
					}
				}
				if !quiet {
					printf(out, "Registered for %s (%s) in %s\n", d.Event, matcherLabel(d), sf.Path())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("event", "e", "", "event the hook runs on (PreToolUse, PostToolUse, Stop, ...)")
	cmd.Flags().StringSlice("tools", nil, "tools the hook applies to (default all)")
	cmd.Flags().StringP("description", "d", "", "one-line description")
	cmd.Flags().Bool("register", false, "register the hook in settings.json")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}
