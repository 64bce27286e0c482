package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/patterngen/version"
)

var versionJSON bool

// VersionCmd prints the build information of the binary.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show patterngen version information",
	Long:  `Display version, commit hash, build date and platform of the patterngen binary.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()
		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		fmt.Fprintf(out, "%s %s\n",
			color.New(color.FgCyan, color.Bold).Sprint("patterngen"),
			color.GreenString(info.Version))
		fmt.Fprintf(out, "  commit:   %s\n", info.Commit)
		fmt.Fprintf(out, "  built:    %s\n", info.Date)
		fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
		fmt.Fprintf(out, "  platform: %s\n", info.Platform)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version info as JSON")
}
