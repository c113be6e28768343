package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Stub(t *testing.T) {
	out, err := Render("stub.py.tmpl", struct{ Name string }{Name: "secret-scanner"})
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "#!/usr/bin/env python3\n"), "stub needs a shebang")
	assert.Contains(t, text, "# claude-hooks: disabled-stub")
	assert.Contains(t, text, "Hook 'secret-scanner' is disabled")
	assert.Contains(t, text, "sys.exit(0)")
	assert.NotContains(t, text, "{{")
}

func TestRender_NewHook(t *testing.T) {
	data := struct {
		Name        string
		Event       string
		Tools       []string
		Description string
	}{
		Name:        "license-header",
		Event:       "PreToolUse",
		Tools:       []string{"Write", "Edit"},
		Description: "Adds license headers",
	}

	out, err := Render("new_hook.py.tmpl", data)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Adds license headers")
	assert.Contains(t, text, "Tools: Write, Edit")
	assert.Contains(t, text, `TOOLS = ["Write", "Edit"]`)
}

func TestRender_NewHookAllTools(t *testing.T) {
	data := struct {
		Name        string
		Event       string
		Tools       []string
		Description string
	}{Name: "notify", Event: "Stop", Description: "Notify"}

	out, err := Render("new_hook.py.tmpl", data)
	require.NoError(t, err)

	assert.Contains(t, string(out), "Tools: all")
	assert.Contains(t, string(out), "TOOLS = []")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing.tmpl", nil)
	assert.Error(t, err)
}
