// Package commands implements the subcommands of the patterngen CLI.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings resolves CLI configuration. Precedence, highest first:
// command-line flags, PATTERNGEN_* environment variables, the
// .patterngen.yaml config file in the working directory, built-in
// defaults.
var settings = newSettings()

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PATTERNGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName(".patterngen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetDefault("target", "")
	v.SetDefault("package", "")
	v.SetDefault("workers", 0)
	v.SetDefault("force", false)
	return v
}

// LoadSettings reads the config file when one exists. A missing file is
// not an error; a malformed one is.
func LoadSettings() error {
	if err := settings.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read %s: %w", settings.ConfigFileUsed(), err)
		}
	}
	return nil
}

// stringSetting returns the value of a string flag, falling back to the
// environment and config file when the flag was not set on the command
// line.
func stringSetting(cmd *cobra.Command, name string) string {
	if cmd.Flags().Changed(name) {
		s, _ := cmd.Flags().GetString(name)
		return s
	}
	return settings.GetString(name)
}

// intSetting is stringSetting for integer flags.
func intSetting(cmd *cobra.Command, name string) int {
	if cmd.Flags().Changed(name) {
		n, _ := cmd.Flags().GetInt(name)
		return n
	}
	return settings.GetInt(name)
}

// boolSetting is stringSetting for boolean flags.
func boolSetting(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) {
		b, _ := cmd.Flags().GetBool(name)
		return b
	}
	return settings.GetBool(name)
}
