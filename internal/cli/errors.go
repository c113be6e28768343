// Package cli provides error handling utilities for CLI output.
package cli

import (
	"fmt"
	"io"
	"strings"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// PrintError prints an error to w with appropriate formatting.
// HookErrors use the user-friendly format; informational ones (a hook
// already in the requested state) are printed as notices, not errors.
func PrintError(w io.Writer, err error) {
	if hookErr := herrors.AsHookError(err); hookErr != nil {
		msg := hookErr.UserMessage()
		if hookErr.Informational() {
			msg = ui.Info.Render(msg)
		}
		_, _ = fmt.Fprintln(w, msg)
		if verbose {
			// In verbose mode, also print the error code and cause
			_, _ = fmt.Fprintf(w, "\nCode: %s\n", hookErr.Code)
			if hookErr.Cause != nil {
				_, _ = fmt.Fprintf(w, "Cause: %v\n", hookErr.Cause)
			}
		}
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// ExitCode maps an error returned by Execute to a process exit status:
// 0 success or no-op, 2 not found, 3 conflict, 4 filesystem, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if hookErr := herrors.AsHookError(err); hookErr != nil {
		return hookErr.ExitCode()
	}
	return 1
}

// withSuggestions adds a "did you mean" hint to not-found errors.
func withSuggestions(a *app, err error, name string) error {
	hookErr := herrors.AsHookError(err)
	if hookErr == nil || hookErr.Code != herrors.CodeHookNotFound {
		return err
	}
	onDisk, _ := a.svc.DiskNames()
	suggestions := a.reg.Suggest(name, onDisk...)
	if len(suggestions) == 0 {
		return err
	}
	return hookErr.WithFix("Did you mean: " + strings.Join(suggestions, ", ") + "?")
}
