// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/registry"
	"github.com/randalmurphal/claude-hooks/internal/settings"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

type infoReport struct {
	hooks.Status
	Descriptor    registry.Descriptor     `json:"descriptor"`
	Source        string                  `json:"source,omitempty"`
	Size          int64                   `json:"size,omitempty"`
	Modified      *time.Time              `json:"modified,omitempty"`
	Registrations []settings.Registration `json:"registrations"`
	Docstring     string                  `json:"docstring,omitempty"`
}

// newInfoCmd creates the info command
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show details about a hook",
		Long: `Show a hook's registry entry, state, files, settings.json registrations
and the documentation at the top of its script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			name := args[0]

			st, err := a.svc.Status(name)
			if err != nil {
				return err
			}
			d, registered := a.descriptor(name)
			if !registered && st.State == hooks.StateAbsent {
				return withSuggestions(a, herrors.ErrHookNotFound(name, a.svc.Dir()), name)
			}

			report := infoReport{Status: *st, Descriptor: d, Source: a.reg.Source(name)}
			if st.Editable != "" {
				if fi, err := os.Stat(st.Editable); err == nil {
					mod := fi.ModTime()
					report.Size = fi.Size()
					report.Modified = &mod
				}
				if src, err := os.ReadFile(st.Editable); err == nil {
					report.Docstring = moduleDocstring(string(src))
				}
			}

			sf, err := settings.Load(a.cfg.SettingsPath)
			if err != nil {
				return err
			}
			report.Registrations, err = sf.Registrations(st.Paths.Active)
			if err != nil {
				return err
			}
			if report.Registrations == nil {
				report.Registrations = []settings.Registration{}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, report)
			}

			printf(out, "%s  %s\n", ui.Bold.Render(name), ui.StateBadge(st.State))
			if d.Description != "" {
				printf(out, "%s\n", d.Description)
			}
			_, _ = fmt.Fprintln(out)
			if registered {
				printf(out, "Event:    %s\n", d.Event)
				printf(out, "Tools:    %s\n", matcherLabel(d))
				printf(out, "Source:   %s\n", report.Source)
			} else {
				printf(out, "Source:   %s\n", ui.Dim.Render("not in registry"))
			}
			printf(out, "Path:     %s\n", st.Paths.Active)
			if st.Editable != "" && st.Editable != st.Paths.Active {
				printf(out, "Original: %s\n", st.Editable)
			}
			if report.Modified != nil {
				printf(out, "Size:     %s, modified %s\n",
					humanize.Bytes(uint64(report.Size)), humanize.Time(*report.Modified))
			}
			if st.Problem != "" {
				printf(out, "%s %s\n", ui.Warning.Render(ui.IconWarn), st.Problem)
			}

			_, _ = fmt.Fprintln(out)
			if len(report.Registrations) == 0 {
				printf(out, "Not registered in %s\n", a.cfg.SettingsPath)
			} else {
				printf(out, "Registered in %s:\n", a.cfg.SettingsPath)
				for _, r := range report.Registrations {
					matcher := r.Matcher
					if matcher == "" {
						matcher = "*"
					}
					printf(out, "  %s [%s] %s\n", r.Event, matcher, ui.Dim.Render(r.Command))
				}
			}

			if report.Docstring != "" {
				_, _ = fmt.Fprintln(out)
				if ui.IsTerminal(out) {
					_, _ = fmt.Fprint(out, ui.RenderMarkdown(report.Docstring, ui.TerminalWidth(out)))
				} else {
					_, _ = fmt.Fprintln(out, report.Docstring)
				}
			}
			return nil
		},
	}
}

// moduleDocstring returns the docstring at the top of a Python source file,
// skipping a shebang, comments and blank lines. It returns "" when the
// first statement is not a string literal.
func moduleDocstring(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.TrimLeft(trimmed, "rRuU")
		var quote string
		switch {
		case strings.HasPrefix(trimmed, `"""`):
			quote = `"""`
		case strings.HasPrefix(trimmed, `'''`):
			quote = `'''`
		default:
			return ""
		}

		rest := strings.Join(append([]string{trimmed[len(quote):]}, lines[i+1:]...), "\n")
		end := strings.Index(rest, quote)
		if end < 0 {
			return ""
		}
		return dedent(rest[:end])
	}
	return ""
}

// dedent strips the common leading indentation of the non-blank lines
// after the first, the way Python's inspect.cleandoc does.
func dedent(doc string) string {
	lines := strings.Split(doc, "\n")
	indent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	lines[0] = strings.TrimSpace(lines[0])
	if indent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= indent {
				lines[i] = lines[i][indent:]
			} else {
				lines[i] = strings.TrimSpace(lines[i])
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
