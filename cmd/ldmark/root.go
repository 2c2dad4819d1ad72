// Root command for the ldmark CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ldmark/internal/logger"
	"github.com/mesh-intelligence/ldmark/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// cfg holds the settings loaded by PersistentPreRunE so all subcommands can
// use them.
var cfg = defaultSettings()

// log is the CLI logger, configured from cfg before any subcommand runs.
var log = logger.Nop()

var rootCmd = &cobra.Command{
	Use:           "ldmark",
	Short:         "ldmark generates schema.org JSON-LD for content entities",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		cfg = settingsFrom(v)
		log = logger.New(logger.Config{
			Level:  cfg.LogLevel,
			Pretty: cfg.LogPretty,
			Output: cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir/ldmark)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.ldmark-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError(err)
	})

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(propertiesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(entityCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveDataDir applies --data-dir > config.yaml data_dir > LDMARK_DATA_DIR
// > $(CWD)/.ldmark-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.DataDir)
}

// resolveConfigDir applies --config-dir > LDMARK_CONFIG_DIR > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
