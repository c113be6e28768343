// Package cli implements the claude-hooks command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/claude-hooks/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
CLAUDE_HOOKS_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			if file := viper.ConfigFileUsed(); file != "" {
				printf(out, "# %s\n", file)
			} else {
				_, _ = fmt.Fprintln(out, "# defaults (no config file)")
			}
			_, _ = fmt.Fprint(out, string(data))
			return nil
		},
	}
}
