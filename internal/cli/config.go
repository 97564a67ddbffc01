package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/alnah/go-subalign/internal/config"
)

// ConfigCmd creates the config command.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The output merges the config file (if present) over the built-in
defaults, so it can be redirected to create a starting config file.`,
		Example: `  subalign config
  subalign config -c ./subalign.toml
  subalign config > ~/.config/subalign/config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(env, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")

	return cmd
}

func runConfig(env *Env, configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, loaded, err := env.ConfigLoader.Load(configPath)
	if err != nil {
		return err
	}
	if loaded {
		fmt.Fprintf(env.Stderr, "# loaded from %s\n", configPath)
	} else {
		fmt.Fprintln(env.Stderr, "# built-in defaults (no config file found)")
	}

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = env.Stdout.Write(encoded)
	return err
}
