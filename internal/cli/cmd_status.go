// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

type statusReport struct {
	HooksDir string        `json:"hooks_dir"`
	Active   int           `json:"active"`
	Disabled int           `json:"disabled"`
	Problems int           `json:"problems"`
	Hooks    []hooks.Entry `json:"hooks"`
}

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [name...]",
		Short: "Show the state of installed hooks",
		Long: `Show the state of installed hooks and point out files left in an
inconsistent layout, such as an interrupted disable.

With names, only those hooks are reported (including ones that are absent).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			var entries []hooks.Entry
			if len(args) == 0 {
				all, err := a.svc.List(a.reg)
				if err != nil {
					return err
				}
				entries = filterEntries(all, "", "", false)
			} else {
				for _, name := range args {
					st, err := a.svc.Status(name)
					if err != nil {
						return err
					}
					d, registered := a.descriptor(name)
					entries = append(entries, hooks.Entry{Status: *st, Descriptor: d, Registered: registered})
				}
			}

			report := statusReport{HooksDir: a.svc.Dir(), Hooks: entries}
			for _, e := range entries {
				switch e.State {
				case hooks.StateActive:
					report.Active++
				case hooks.StateDisabled:
					report.Disabled++
				}
				if e.Problem != "" {
					report.Problems++
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, report)
			}

			printf(out, "Hooks directory: %s\n", report.HooksDir)
			printf(out, "%d active, %d disabled\n", report.Active, report.Disabled)
			if len(entries) > 0 {
				_, _ = fmt.Fprintln(out)
			}
			for _, e := range entries {
				line := fmt.Sprintf("  %s %s", ui.StateBadge(e.State), e.Name)
				if e.Legacy {
					line += ui.Dim.Render(" (legacy .disabled)")
				}
				_, _ = fmt.Fprintln(out, line)
				if e.Problem != "" {
					printf(out, "      %s %s\n", ui.Warning.Render(ui.IconWarn), e.Problem)
				}
			}
			if report.Problems > 0 {
				_, _ = fmt.Fprintln(out)
				printf(out, "%s %d hook(s) need attention\n", ui.Warning.Render(ui.IconWarn), report.Problems)
			}
			return nil
		},
	}
}
