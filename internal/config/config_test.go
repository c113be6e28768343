package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".claude", "hooks"), cfg.HooksDir)
	assert.Equal(t, filepath.Join(home, ".claude", "settings.json"), cfg.SettingsPath)
	assert.Equal(t, filepath.Join(cfg.HooksDir, "registry.toml"), cfg.RegistryPath)
	assert.Equal(t, "python3", cfg.Python)
	assert.Empty(t, cfg.SourceDir)
	assert.Empty(t, cfg.Editor)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, 10*time.Second, cfg.TestTimeout)
	assert.Equal(t, 4, cfg.TestParallelism)
}

func TestLoad_EnvOverrides(t *testing.T) {
	v := newViper(t)
	t.Setenv("CLAUDE_HOOKS_HOOKS_DIR", "/srv/hooks")
	t.Setenv("CLAUDE_HOOKS_LOCK_TIMEOUT", "250ms")
	t.Setenv("CLAUDE_HOOKS_TEST_PARALLELISM", "8")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/hooks", cfg.HooksDir)
	assert.Equal(t, "/srv/hooks/registry.toml", cfg.RegistryPath)
	assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout)
	assert.Equal(t, 8, cfg.TestParallelism)
}

func TestLoad_ConfigFile(t *testing.T) {
	v := newViper(t)
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := `
hooks_dir: /opt/hooks
source_dir: ~/src/claude-hooks/hooks
registry_path: /opt/registry.toml
python: /usr/bin/python3.12
editor: nano
test_timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, "/opt/hooks", cfg.HooksDir)
	assert.Equal(t, filepath.Join(home, "src", "claude-hooks", "hooks"), cfg.SourceDir)
	assert.Equal(t, "/opt/registry.toml", cfg.RegistryPath)
	assert.Equal(t, "/usr/bin/python3.12", cfg.Python)
	assert.Equal(t, "nano", cfg.Editor)
	assert.Equal(t, 30*time.Second, cfg.TestTimeout)
}

func TestLoad_EditorFallback(t *testing.T) {
	v := newViper(t)
	t.Setenv("EDITOR", "vi")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "vi", cfg.Editor)

	t.Setenv("VISUAL", "code --wait")
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, "code --wait", cfg.Editor)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{KeyHooksDir, ""},
		{KeySettingsPath, " "},
		{KeyLockTimeout, "0s"},
		{KeyTestTimeout, "-1s"},
		{KeyTestParallelism, 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.True(t, herrors.HasCode(err, herrors.CodeConfigInvalid))
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	v := newViper(t)
	v.Set(KeyLockTimeout, "soon")

	_, err := Load(v)
	assert.True(t, herrors.HasCode(err, herrors.CodeConfigInvalid))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := map[string]string{
		"~":              "/home/tester",
		"~/.claude":      "/home/tester/.claude",
		"/abs/path":      "/abs/path",
		"relative/path":  "relative/path",
		"~other/.claude": "~other/.claude",
		"":               "",
	}
	for in, want := range tests {
		got, err := ExpandHome(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "ExpandHome(%q)", in)
	}
}

func TestConfig_YAML(t *testing.T) {
	cfg := &Config{
		HooksDir:        "/h",
		SettingsPath:    "/s.json",
		RegistryPath:    "/h/registry.toml",
		Python:          "python3",
		LockTimeout:     5 * time.Second,
		TestTimeout:     10 * time.Second,
		TestParallelism: 4,
	}
	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "hooks_dir: /h")
	assert.Contains(t, text, "lock_timeout: 5s")
	assert.NotContains(t, text, "source_dir", "empty optional keys are omitted")
}
