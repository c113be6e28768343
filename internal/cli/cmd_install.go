// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/claude-hooks/internal/config"
	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/hooks"
	"github.com/randalmurphal/claude-hooks/internal/registry"
	"github.com/randalmurphal/claude-hooks/internal/settings"
	"github.com/randalmurphal/claude-hooks/internal/ui"
)

// newInstallCmd creates the install command
func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [name...]",
		Short: "Copy hooks into the hooks directory",
		Long: `Copy <name>.py from the source directory into the hooks directory.

The source directory is --from, or source_dir from the config file.
An installed or disabled hook is only replaced with --force, which also
deletes its .original backup.

Examples:
  claude-hooks install secret-scanner --from ./hooks
  claude-hooks install --all --register`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetString("from")
			all, _ := cmd.Flags().GetBool("all")
			force, _ := cmd.Flags().GetBool("force")
			register, _ := cmd.Flags().GetBool("register")

			if from == "" {
				from = a.cfg.SourceDir
			} else if from, err = config.ExpandHome(from); err != nil {
				return err
			}
			if from == "" {
				return herrors.ErrConfigInvalid(config.KeySourceDir, "no source directory; pass --from or set source_dir")
			}

			names := args
			if all {
				if names, err = sourceNames(from); err != nil {
					return err
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no hooks to install; name one or pass --all")
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			var sf *settings.File
			if register {
				if sf, err = settings.Load(a.cfg.SettingsPath); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			var errs []error
			registered := 0
			for _, name := range names {
				if err := a.svc.Install(ctx, name, from, force); err != nil {
					printf(cmd.ErrOrStderr(), "%s %s: %v\n", ui.Error.Render(ui.IconFail), name, err)
					errs = append(errs, err)
					continue
				}
				if !quiet {
					printf(out, "%s %s installed\n", ui.Success.Render(ui.IconPass), name)
				}
				if sf == nil {
					continue
				}
				d, ok := a.reg.Lookup(name)
				if !ok {
					printf(cmd.ErrOrStderr(), "%s %s is not in the registry; register it manually\n",
						ui.Warning.Render(ui.IconWarn), name)
					continue
				}
				if sf.Register(d, a.command(name)) {
					registered++
				}
			}

			if sf != nil && registered > 0 {
				if err := sf.Save(); err != nil {
					return err
				}
				if !quiet {
					printf(out, "Registered %d hook(s) in %s\n", registered, sf.Path())
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().String("from", "", "directory holding hook sources")
	cmd.Flags().BoolP("all", "a", false, "install every hook in the source directory")
	cmd.Flags().BoolP("force", "f", false, "replace hooks that are already present")
	cmd.Flags().Bool("register", false, "register installed hooks in settings.json")
	return cmd
}

// sourceNames lists hook names in a source directory.
func sourceNames(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, herrors.ErrFilesystem("read directory", dir, err)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "*"+hooks.Ext)
	if err != nil {
		return nil, herrors.ErrFilesystem("list", dir, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(m, hooks.Ext)
		if registry.ValidName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
