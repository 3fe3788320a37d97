// Package cmd provides the command-line interface for a11yscan, a static
// accessibility analyzer for HTML/JSX, JS/TS, and CSS source.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --format, etc.) - highest priority
//	2. A11Y_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (A11Y_SCAN_PATHS, etc.)
//	4. Configuration file (.a11yscan.yml) - lowest priority
//
// Environment Variables:
//
//	A11Y_CONFIG_FILE: Path to custom configuration file
//	A11Y_SCAN_PATHS: Override scan paths
//	A11Y_REPORT_FORMAT: Override report format
//	And many more following the A11Y_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "a11yscan",
	Short: "A static accessibility analyzer for web source code",
	Long: `a11yscan scans HTML/JSX, JavaScript/TypeScript, and CSS source for
accessibility issues tagged against WCAG success criteria, without running
a browser or executing any application code.

Quick Start:
  a11yscan scan .                 Scan the current directory
  a11yscan scan --watch ./src     Scan and re-run on file changes
  a11yscan scan --format json .   Emit a JSON report

Documentation: https://github.com/conneroisu/a11yscan`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .a11yscan.yml, can also use A11Y_CONFIG_FILE env var)")
}

// initConfig initializes the configuration system with support for
// multiple config sources (flag, env var, default file), matching the
// teacher CLI's layered precedence.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("A11Y_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".a11yscan")
	}

	viper.SetEnvPrefix("A11Y")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
