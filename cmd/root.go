// Package cmd provides the command-line interface for basset with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, etc.) - highest priority
//	2. BASSET_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (BASSET_STORAGE_ROOT, etc.)
//	4. Configuration files (.basset.yml) - lowest priority
//
// Environment Variables:
//
//	BASSET_CONFIG_FILE: Path to custom configuration file
//	BASSET_STORAGE_ROOT: Override the storage disk root directory
//	BASSET_STORAGE_BASE_URL: Override the public base URL
//	BASSET_CACHE_MAP_ENABLED: Enable/disable the persistent cache map
//	And more following the BASSET_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "basset",
	Short: "Internalize external front-end assets into local storage",
	Long: `Basset internalizes external or remote front-end assets (stylesheets,
scripts, inline code blocks, archives, directories) into locally controlled
storage, so pages reference a stable, cache-busted path instead of a CDN.

Key Features:
  • One-time fetch per asset: in-memory, on-disk and persistent-map checks
    short-circuit repeated work
  • Graceful degradation: failed assets fall back to their original reference
  • Archive and directory internalization with relative layout preserved
  • Persistent cache map for cross-run resolution

Quick Start:
  basset internalize https://cdn.example.com/lib.js     Internalize one asset
  basset list                                           Show the cache map
  basset clear                                          Reset internalized storage
  basset watch                                          Re-internalize on change

Command Aliases (for faster typing):
  internalize (i), list (l), watch (w)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .basset.yml, can also use BASSET_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. BASSET_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .basset.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("BASSET_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".basset")
	}

	// Enable automatic environment variable binding with BASSET_ prefix
	// Examples: BASSET_STORAGE_ROOT, BASSET_CACHE_MAP_ENABLED
	viper.SetEnvPrefix("BASSET")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// If the file doesn't exist Viper falls back to defaults without
	// failing, so a bare checkout still works.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
