// Init command for the ldmark CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ldmark/internal/paths"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ldmark configuration and storage",
	Long: `Init creates the configuration directory with a default config.yaml and
the data directory with an empty entities.jsonl. With --force, config.yaml is
rewritten from the effective settings, including the resolved data directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// loadConfig in PersistentPreRunE already created the config directory
		// and default file.
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		if initForce {
			s := cfg
			s.DataDir = dataDir
			if err := writeConfigFile(paths.ConfigFile(configDir), s); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		if err := backend.Detach(); err != nil {
			return fmt.Errorf("detach backend: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ldmark initialized successfully")
		fmt.Fprintln(out, "  config:", configDir)
		fmt.Fprintln(out, "  data:  ", dataDir)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "rewrite config.yaml from the effective settings")
}
