// Package templates provides the embedded Python files claude-hooks writes
// into the hooks directory.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Hooks contains the stub written over disabled hooks and the scaffold used
// by 'claude-hooks create'.
//
//go:embed hooks/*.tmpl
var Hooks embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Render executes the named template from Hooks with data.
func Render(name string, data any) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(Hooks, "hooks/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
