// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/claude-hooks/internal/config"
	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/lock"
	"github.com/randalmurphal/claude-hooks/internal/registry"
	"github.com/randalmurphal/claude-hooks/internal/settings"
)

// app bundles what most commands need.
type app struct {
	cfg    *config.Config
	reg    *registry.Registry
	svc    *hooks.Service
	logger *slog.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr())

	reg, err := registry.Load(cfg.RegistryPath)
	if err != nil {
		return nil, herrors.ErrRegistryInvalid(cfg.RegistryPath, err.Error())
	}

	svc := hooks.NewService(cfg.HooksDir,
		hooks.WithLogger(logger),
		hooks.WithLocker(lock.NewDirLock(cfg.HooksDir, cfg.LockTimeout, logger)),
	)
	return &app{cfg: cfg, reg: reg, svc: svc, logger: logger}, nil
}

// descriptor returns the registry entry for name, or a bare descriptor
// for hooks that only exist on disk.
func (a *app) descriptor(name string) (registry.Descriptor, bool) {
	if d, ok := a.reg.Lookup(name); ok {
		return d, true
	}
	return registry.Descriptor{Name: name}, false
}

func (a *app) command(name string) string {
	return settings.Command(a.cfg.Python, a.svc.Paths(name).Active)
}

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}
