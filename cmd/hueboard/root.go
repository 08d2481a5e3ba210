// Root command for the hueboard CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/hueboard/hueboard/internal/log"
	"github.com/hueboard/hueboard/internal/paths"
	"github.com/hueboard/hueboard/pkg/storage"
	"github.com/hueboard/hueboard/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:     "hueboard",
	Short:   "Hueboard manages local catalog storage for lists, images, and swatches",
	Version: storage.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		log.Init(log.Options{
			Level:  cfg.GetString(cfgKeyLogLevel),
			Format: cfg.GetString(cfgKeyLogFormat),
			File:   cfg.GetString(cfgKeyLogFile),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.hueboard)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.hueboard-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(swatchCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(usageCmd)
}

// resolveDataDir returns the data directory path following precedence:
// --data-dir flag > config.yaml data_dir > HUEBOARD_DATA_DIR env >
// default $(CWD)/.hueboard-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following
// precedence: --config-dir flag > HUEBOARD_CONFIG_DIR env >
// DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// openStorage resolves the data directory and opens the engine. The
// caller must defer store.Close().
func openStorage() (*storage.Storage, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	return storage.Open(types.Config{DataDir: dataDir})
}
