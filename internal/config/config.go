// Package config provides configuration management for claude-hooks.
//
// Values come from, in increasing precedence: built-in defaults, the config
// file (~/.claude-hooks/config.yaml), CLAUDE_HOOKS_* environment variables and
// command-line flags. Resolution is done by viper; this package owns the key
// names, the defaults and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
)

const (
	// ConfigFileName is the default config file name
	ConfigFileName = "config.yaml"
	// ConfigDir is the directory under $HOME holding the config file
	ConfigDir = ".claude-hooks"
	// EnvPrefix prefixes environment overrides, e.g. CLAUDE_HOOKS_HOOKS_DIR.
	EnvPrefix = "CLAUDE_HOOKS"
)

// Keys.
const (
	KeyHooksDir        = "hooks_dir"
	KeySettingsPath    = "settings_path"
	KeySourceDir       = "source_dir"
	KeyRegistryPath    = "registry_path"
	KeyPython          = "python"
	KeyEditor          = "editor"
	KeyLockTimeout     = "lock_timeout"
	KeyTestTimeout     = "test_timeout"
	KeyTestParallelism = "test_parallelism"
)

// Config represents the claude-hooks configuration.
type Config struct {
	// HooksDir is the directory the host runtime loads hooks from.
	HooksDir string `mapstructure:"hooks_dir" yaml:"hooks_dir"`

	// SettingsPath is the host settings.json that registers hooks.
	SettingsPath string `mapstructure:"settings_path" yaml:"settings_path"`

	// SourceDir holds hook sources for 'install'. Optional.
	SourceDir string `mapstructure:"source_dir" yaml:"source_dir,omitempty"`

	// RegistryPath is the overlay registry for hooks made with 'create'.
	// Defaults to <hooks_dir>/registry.toml.
	RegistryPath string `mapstructure:"registry_path" yaml:"registry_path"`

	// Python runs hook scripts; empty executes them directly.
	Python string `mapstructure:"python" yaml:"python"`

	// Editor used by 'edit'. Falls back to $VISUAL then $EDITOR.
	Editor string `mapstructure:"editor" yaml:"editor,omitempty"`

	LockTimeout     time.Duration `mapstructure:"lock_timeout" yaml:"lock_timeout"`
	TestTimeout     time.Duration `mapstructure:"test_timeout" yaml:"test_timeout"`
	TestParallelism int           `mapstructure:"test_parallelism" yaml:"test_parallelism"`
}

// SetDefaults registers the default value of every key on v. Keys must be
// known to v for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHooksDir, filepath.Join("~", ".claude", "hooks"))
	v.SetDefault(KeySettingsPath, filepath.Join("~", ".claude", "settings.json"))
	v.SetDefault(KeySourceDir, "")
	v.SetDefault(KeyRegistryPath, "")
	v.SetDefault(KeyPython, "python3")
	v.SetDefault(KeyEditor, "")
	v.SetDefault(KeyLockTimeout, 5*time.Second)
	v.SetDefault(KeyTestTimeout, 10*time.Second)
	v.SetDefault(KeyTestParallelism, 4)
}

// Load resolves the configuration held by v, expands ~ in paths, fills
// derived values and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, herrors.ErrConfigInvalid("config", err.Error())
	}

	var err error
	for _, p := range []*string{&cfg.HooksDir, &cfg.SettingsPath, &cfg.SourceDir, &cfg.RegistryPath} {
		if *p, err = ExpandHome(*p); err != nil {
			return nil, herrors.ErrConfigInvalid("paths", err.Error())
		}
	}
	if cfg.RegistryPath == "" && cfg.HooksDir != "" {
		cfg.RegistryPath = filepath.Join(cfg.HooksDir, "registry.toml")
	}
	if cfg.Editor == "" {
		cfg.Editor = os.Getenv("VISUAL")
	}
	if cfg.Editor == "" {
		cfg.Editor = os.Getenv("EDITOR")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the commands cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HooksDir) == "" {
		return herrors.ErrConfigInvalid(KeyHooksDir, "must not be empty")
	}
	if strings.TrimSpace(c.SettingsPath) == "" {
		return herrors.ErrConfigInvalid(KeySettingsPath, "must not be empty")
	}
	if c.LockTimeout <= 0 {
		return herrors.ErrConfigInvalid(KeyLockTimeout, fmt.Sprintf("must be positive, got %s", c.LockTimeout))
	}
	if c.TestTimeout <= 0 {
		return herrors.ErrConfigInvalid(KeyTestTimeout, fmt.Sprintf("must be positive, got %s", c.TestTimeout))
	}
	if c.TestParallelism < 1 {
		return herrors.ErrConfigInvalid(KeyTestParallelism, fmt.Sprintf("must be at least 1, got %d", c.TestParallelism))
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
