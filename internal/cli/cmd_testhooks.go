// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/runner"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

type testOutcome struct {
	Name   string         `json:"name"`
	State  hooks.State    `json:"state"`
	Result *runner.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (o testOutcome) failed() bool {
	if o.Error != "" {
		return true
	}
	return !o.Result.Passed() && !o.Result.Blocked
}

// newTestCmd creates the test command
func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [name...]",
		Short: "Run hooks with a sample payload",
		Long: `Run hooks the way the host does: a JSON payload on stdin, the verdict
in the exit code. Exit 0 allows the tool call and exit 2 blocks it; any
other exit status or a timeout counts as a failure.

Without --payload each hook gets a harmless sample shaped for its event.

Examples:
  claude-hooks test secret-scanner
  claude-hooks test --all
  claude-hooks test validate-git-commit --payload '{"tool_name":"Bash","tool_input":{"command":"git commit -m wip"}}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			payload, _ := cmd.Flags().GetString("payload")
			if payload != "" && !gjson.Valid(payload) {
				return fmt.Errorf("--payload is not valid JSON")
			}

			names := args
			if all {
				if names, err = a.svc.DiskNames(); err != nil {
					return err
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no hooks to test; name one or pass --all")
			}

			statuses := make([]*hooks.Status, len(names))
			for i, name := range names {
				st, err := a.svc.Status(name)
				if err != nil {
					return err
				}
				if st.State == hooks.StateAbsent {
					return withSuggestions(a, herrors.ErrHookNotFound(name, a.svc.Dir()), name)
				}
				statuses[i] = st
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			r := runner.New(a.logger,
				runner.WithInterpreter(a.cfg.Python),
				runner.WithTimeout(a.cfg.TestTimeout),
			)

			outcomes := make([]testOutcome, len(statuses))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(a.cfg.TestParallelism)
			for i, st := range statuses {
				g.Go(func() error {
					input := payload
					if input == "" {
						d, _ := a.descriptor(st.Name)
						input = runner.SamplePayload(d)
					}
					o := testOutcome{Name: st.Name, State: st.State}
					res, err := r.Run(gctx, st.Paths.Active, input)
					if err != nil {
						o.Error = err.Error()
					}
					o.Result = res
					outcomes[i] = o
					return nil
				})
			}
			_ = g.Wait()

			failed := 0
			for _, o := range outcomes {
				if o.failed() {
					failed++
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if err := printJSON(out, outcomes); err != nil {
					return err
				}
			} else {
				for _, o := range outcomes {
					printOutcome(cmd, o)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d hook(s) failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("all", "a", false, "test every hook in the hooks directory")
	cmd.Flags().String("payload", "", "JSON payload to send instead of the sample")
	return cmd
}

func printOutcome(cmd *cobra.Command, o testOutcome) {
	out := cmd.OutOrStdout()
	label := o.Name
	if o.State == hooks.StateDisabled {
		label += ui.Dim.Render(" (disabled)")
	}

	switch {
	case o.Error != "":
		printf(out, "%s %s  %s\n", ui.Error.Render(ui.IconFail), label, o.Error)
		return
	case o.Result.Blocked:
		printf(out, "%s %s  blocked (exit %d, %s)\n", ui.Warning.Render(ui.IconWarn), label,
			o.Result.ExitCode, o.Result.Duration.Round(time.Millisecond))
	case o.Result.Passed():
		printf(out, "%s %s  exit 0 (%s)\n", ui.Success.Render(ui.IconPass), label, o.Result.Duration.Round(time.Millisecond))
	default:
		printf(out, "%s %s  exit %d (%s)\n", ui.Error.Render(ui.IconFail), label,
			o.Result.ExitCode, o.Result.Duration.Round(time.Millisecond))
	}
	if stderr := strings.TrimSpace(o.Result.Stderr); stderr != "" && (verbose || !o.Result.Passed()) {
		for _, line := range strings.Split(stderr, "\n") {
			printf(out, "    %s\n", ui.Dim.Render(line))
		}
	}
}
