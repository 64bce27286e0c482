package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/patterngen/compiler/gen"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// printDiagnostics renders warnings and errors to stderr, ordered by
// class and element, with the severity highlighted. Info findings show
// only with --verbose.
func printDiagnostics(cmd *cobra.Command, rep *gen.Reporter) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.ErrOrStderr()
	for _, d := range rep.Sorted() {
		switch d.Severity {
		case gen.SeverityError:
			fmt.Fprintln(out, colorize(errorColor, d))
		case gen.SeverityWarning:
			fmt.Fprintln(out, colorize(warningColor, d))
		default:
			if verbose {
				fmt.Fprintln(out, d.String())
			}
		}
	}
}

// colorize highlights the severity prefix of one diagnostic line.
func colorize(c *color.Color, d gen.Diagnostic) string {
	line := d.String()
	prefix := d.Severity.String()
	return c.Sprint(prefix) + strings.TrimPrefix(line, prefix)
}
