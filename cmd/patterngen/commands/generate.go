package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/patterngen/compiler/gen"
	"github.com/syssam/patterngen/compiler/gen/builder"
	"github.com/syssam/patterngen/compiler/load"
	"github.com/syssam/patterngen/logger"
)

var (
	generateTarget  string
	generatePackage string
	generateWorkers int
	generateForce   bool
	generateWatch   bool
)

// GenerateCmd compiles class descriptions and emits builder companions.
var GenerateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Generate builder companions from class descriptions",
	Long: `Generate loads every YAML class description under dir (default ".")
and emits one Go file per class per targeted pattern.

Findings that concern a single class never stop the others: conflicts
are reported as warnings and the companion is still emitted. The command
fails when any class reports an error.

Examples:
  patterngen generate ./descriptions --target ./inventory
  patterngen generate ./descriptions --package shop --workers 4
  patterngen generate ./descriptions --watch`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateTarget, "target", "t", "", "output directory (default: the description directory)")
	GenerateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "package name of generated files (default: base of the target directory)")
	GenerateCmd.Flags().IntVarP(&generateWorkers, "workers", "w", 0, "concurrent class limit (default: GOMAXPROCS)")
	GenerateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "regenerate classes whose descriptions are unchanged")
	GenerateCmd.Flags().BoolVar(&generateWatch, "watch", false, "stay running and regenerate when a description changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	target := stringSetting(cmd, "target")
	if target == "" {
		target = dir
	}
	opts := []gen.Option{
		gen.WithTarget(target),
		gen.WithLogger(logger.Get()),
	}
	if pkg := stringSetting(cmd, "package"); pkg != "" {
		opts = append(opts, gen.WithPackage(pkg))
	}
	if workers := intSetting(cmd, "workers"); workers > 0 {
		opts = append(opts, gen.WithWorkers(workers))
	}
	if boolSetting(cmd, "force") {
		opts = append(opts, gen.WithForce(true))
	}
	if !generateWatch {
		return generateOnce(cmd.Context(), cmd, dir, target, opts)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// The first pass may fail on a half-edited description; keep
	// watching, the next save gets another run.
	if err := generateOnce(ctx, cmd, dir, target, opts); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "watching %s for changes (Ctrl-C to stop)\n", dir)
	return watchLoop(ctx, dir, watchDebounce, func() {
		if err := generateOnce(ctx, cmd, dir, target, opts); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	})
}

// generateOnce runs one full load-compile-emit pass and prints its
// diagnostics.
func generateOnce(ctx context.Context, cmd *cobra.Command, dir, target string, opts []gen.Option) error {
	classes, err := load.ReadDir(dir)
	if err != nil {
		return err
	}
	rep := gen.NewReporter(nil)
	err = builder.Generate(ctx, classes, append(opts, gen.WithReporter(rep))...)
	printDiagnostics(cmd, rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s compiled %d class descriptions to %s\n",
		color.GreenString("✓"), len(classes), target)
	return nil
}
