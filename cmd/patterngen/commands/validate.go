package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/patterngen/compiler/gen"
	"github.com/syssam/patterngen/compiler/load"
)

// ValidateCmd checks class descriptions without generating code.
var ValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check class descriptions without generating code",
	Long: `Validate loads every YAML class description under dir (default ".")
and runs the compilation pipeline up to conflict detection: structural
validation, ambiguity checks, member classification. Nothing is written.

Every finding is printed; the command fails when any description carries
an error.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	classes, err := load.ReadDir(dir)
	if err != nil {
		return err
	}
	c := gen.MustNewConfig()
	rep := gen.NewReporter(nil)
	seen := make(map[string]bool, len(classes))
	for _, cls := range classes {
		if seen[cls.Name] {
			rep.Errorf(cls.Name, "", gen.NewStructuralError(cls.Name, "", "class redeclared", nil),
				"class %q declared more than once", cls.Name)
			continue
		}
		seen[cls.Name] = true
		validateClass(c, cls, rep)
	}
	printDiagnostics(cmd, rep)
	if rep.HasErrors() {
		return fmt.Errorf("validation failed: %d error(s) in %d of %d classes",
			rep.Count(gen.SeverityError), len(rep.FailedClasses()), len(classes))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d classes valid", color.GreenString("✓"), len(classes))
	if w := rep.Count(gen.SeverityWarning); w > 0 {
		fmt.Fprintf(out, ", %d warning(s)", w)
	}
	fmt.Fprintln(out)
	return nil
}

// validateClass mirrors the front half of the generation pipeline:
// everything up to synthesis.
func validateClass(c *gen.Config, cls *load.Class, rep *gen.Reporter) {
	t, err := gen.NewType(c, cls)
	if err != nil {
		rep.Errorf(cls.Name, "", err, "invalid class description")
		return
	}
	for _, name := range t.UnknownPatterns() {
		rep.Warnf(t.Name, "", nil, "unknown pattern %q, skipping", name)
	}
	ambiguous := gen.Ambiguity(t)
	gen.ValidateAffects(t, ambiguous, rep)
	for _, p := range t.Patterns {
		sets := gen.Classify(t, p, ambiguous, rep)
		gen.DetectConflicts(t, sets, rep)
	}
}
