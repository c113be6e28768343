package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_NamesUniqueAndValid(t *testing.T) {
	r := Builtin()

	require.Equal(t, len(builtins), r.Len(), "every builtin should be registered once")
	for _, d := range r.All() {
		assert.True(t, ValidName(d.Name), "name %q should be kebab-case", d.Name)
		assert.True(t, ValidEvent(d.Event), "hook %q has unknown event %q", d.Name, d.Event)
		assert.NotEmpty(t, d.Description, "hook %q needs a description", d.Name)
		assert.Equal(t, SourceBuiltin, r.Source(d.Name))
	}
}

func TestBuiltin_SecretScanner(t *testing.T) {
	d, ok := Builtin().Lookup("secret-scanner")
	require.True(t, ok)

	assert.Equal(t, EventPreToolUse, d.Event)
	assert.Equal(t, []string{"Bash", "Write", "Edit", "MultiEdit"}, d.Tools)
	assert.False(t, d.AllTools())
}

func TestBuiltin_StopHookAppliesToAllTools(t *testing.T) {
	d, ok := Builtin().Lookup("session-end-summary")
	require.True(t, ok)

	assert.Equal(t, EventStop, d.Event)
	assert.True(t, d.AllTools())
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(
		Descriptor{Name: "a-hook", Event: EventStop},
		Descriptor{Name: "a-hook", Event: EventPreToolUse},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestNew_RejectsBadNamesAndEvents(t *testing.T) {
	_, err := New(Descriptor{Name: "Bad_Name"})
	assert.Error(t, err)

	_, err = New(Descriptor{Name: "good-name", Event: "BeforeEverything"})
	assert.Error(t, err)
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"secret-scanner", true},
		{"a", true},
		{"hook2", true},
		{"my-hook-3", true},
		{"", false},
		{"Secret", false},
		{"double--dash", false},
		{"-leading", false},
		{"trailing-", false},
		{"under_score", false},
		{"../escape", false},
		{"dot.py", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.name))
		})
	}
}

func TestNames_Sorted(t *testing.T) {
	r, err := New(
		Descriptor{Name: "zeta"},
		Descriptor{Name: "alpha"},
		Descriptor{Name: "mid"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())

	// Names returns a copy.
	names := r.Names()
	names[0] = "changed"
	assert.Equal(t, "alpha", r.Names()[0])
}

func TestSuggest(t *testing.T) {
	r := Builtin()

	got := r.Suggest("secret-scaner")
	require.NotEmpty(t, got)
	assert.Equal(t, "secret-scanner", got[0])

	assert.LessOrEqual(t, len(r.Suggest("e")), 3)
	assert.Empty(t, r.Suggest("zzzzzzzz"))
}

func TestSuggest_IncludesExtraCandidates(t *testing.T) {
	r := Builtin()

	got := r.Suggest("my-custm", "my-custom-check")
	assert.Equal(t, []string{"my-custom-check"}, got)
}

func TestLoad_MissingOverlay(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "registry.toml"))
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), r.Len())
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	content := `
[hooks.license-header]
event = "PreToolUse"
tools = ["Write"]
description = "Adds license headers"

[hooks.notify-done]
event = "Stop"
description = "Desktop notification"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	d, ok := r.Lookup("license-header")
	require.True(t, ok)
	assert.Equal(t, "license-header", d.Name)
	assert.Equal(t, []string{"Write"}, d.Tools)
	assert.Equal(t, path, r.Source("license-header"))

	d, ok = r.Lookup("notify-done")
	require.True(t, ok)
	assert.True(t, d.AllTools())

	assert.Equal(t, Builtin().Len()+2, r.Len())
}

func TestLoad_OverlayCannotShadowBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hooks.secret-scanner]\nevent = \"Stop\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret-scanner")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hooks.x\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAppendAndRemoveOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.toml")

	d := Descriptor{Name: "my-check", Event: EventPostToolUse, Tools: []string{"Edit"}, Description: "mine"}
	require.NoError(t, AppendOverlay(path, d))

	r, err := Load(path)
	require.NoError(t, err)
	got, ok := r.Lookup("my-check")
	require.True(t, ok)
	assert.Equal(t, d, got)

	err = AppendOverlay(path, d)
	assert.Error(t, err, "duplicate overlay entry should be rejected")

	removed, err := RemoveOverlay(path, "my-check")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveOverlay(path, "my-check")
	require.NoError(t, err)
	assert.False(t, removed)

	r, err = Load(path)
	require.NoError(t, err)
	_, ok = r.Lookup("my-check")
	assert.False(t, ok)
}

func TestAppendOverlay_RejectsBuiltinAndBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")

	assert.Error(t, AppendOverlay(path, Descriptor{Name: "secret-scanner", Event: EventStop}))
	assert.Error(t, AppendOverlay(path, Descriptor{Name: "Nope", Event: EventStop}))
	assert.Error(t, AppendOverlay(path, Descriptor{Name: "fine", Event: "Whenever"}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected entries must not create the overlay")
}
