package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/patterngen/cmd/patterngen/commands"
	"github.com/syssam/patterngen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "patterngen",
	Short: "patterngen - builder companions for plain Go types",
	Long: `patterngen compiles class descriptions into fluent builder companions.

A class description declares the fields and methods of a target type
together with the markers that steer generation: ignored fields stay out
of the builder, immutable fields lose their setters, replacement methods
take over the setters of the fields they claim, and included methods are
carried into the companion verbatim.

Descriptions are authored either as Go types implementing
patterngen.Class or as YAML documents next to the code they describe.

Examples:
  patterngen generate ./descriptions --target ./inventory
  patterngen generate ./descriptions --watch
  patterngen validate ./descriptions
  patterngen version`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if err := logger.Initialize(verbose); err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return commands.LoadSettings()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug output")
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
