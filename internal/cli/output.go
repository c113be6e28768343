// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/randalmurphal/claude-hooks/internal/registry"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

// matcherLabel describes which tools a hook fires for.
func matcherLabel(d registry.Descriptor) string {
	if d.AllTools() {
		return "all tools"
	}
	return strings.Join(d.Tools, ", ")
}
