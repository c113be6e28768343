// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/registry"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List hooks and their state",
		Long: `List hooks grouped by the event they run on.

By default only hooks present in the hooks directory are shown. Use --all
to include every hook in the registry.

Examples:
  claude-hooks list                  # Installed hooks
  claude-hooks list --all            # Everything the registry knows
  claude-hooks list --match 'git-*'  # Filter by name
  claude-hooks list --event Stop     # Only Stop hooks`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			match, _ := cmd.Flags().GetString("match")
			event, _ := cmd.Flags().GetString("event")
			all, _ := cmd.Flags().GetBool("all")

			if match != "" && !doublestar.ValidatePattern(match) {
				return fmt.Errorf("invalid --match pattern %q", match)
			}
			if event != "" && !registry.ValidEvent(registry.Event(event)) {
				return fmt.Errorf("unknown event %q", event)
			}

			entries, err := a.svc.List(a.reg)
			if err != nil {
				return err
			}
			entries = filterEntries(entries, match, registry.Event(event), all)

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().String("match", "", "only hooks whose name matches this glob")
	cmd.Flags().String("event", "", "only hooks for this event")
	cmd.Flags().BoolP("all", "a", false, "include hooks that are not installed")
	return cmd
}

func filterEntries(entries []hooks.Entry, match string, event registry.Event, all bool) []hooks.Entry {
	out := make([]hooks.Entry, 0, len(entries))
	for _, e := range entries {
		if !all && e.State == hooks.StateAbsent {
			continue
		}
		if event != "" && e.Descriptor.Event != event {
			continue
		}
		if match != "" {
			if ok, _ := doublestar.Match(match, e.Name); !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func printEntries(w io.Writer, entries []hooks.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No hooks found. Run 'claude-hooks list --all' to see available hooks.")
		return
	}

	byEvent := make(map[registry.Event][]hooks.Entry)
	var other []hooks.Entry
	for _, e := range entries {
		if !e.Registered {
			other = append(other, e)
			continue
		}
		byEvent[e.Descriptor.Event] = append(byEvent[e.Descriptor.Event], e)
	}

	first := true
	section := func(title string, rows []hooks.Entry) {
		if len(rows) == 0 {
			return
		}
		if !first {
			_, _ = fmt.Fprintln(w)
		}
		first = false
		_, _ = fmt.Fprintln(w, ui.Bold.Render(title))
		for _, e := range rows {
			line := fmt.Sprintf("  %-28s %s", e.Name, ui.StateBadge(e.State))
			if e.Descriptor.Description != "" {
				line += "  " + ui.Dim.Render(e.Descriptor.Description)
			}
			if e.Problem != "" {
				line += "  " + ui.Warning.Render(ui.IconWarn)
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}

	for _, event := range registry.EventOrder {
		section(string(event), byEvent[event])
	}
	section("Other hooks", other)
}
