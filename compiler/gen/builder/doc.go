// Package builder implements the builder-pattern synthesizer for patterngen.
//
// This package assembles fluent builder companions for described classes
// using the Jennifer code generation library. It implements the
// gen.Synthesizer interface and produces one file per class.
//
// # Generated Code Structure
//
// For each class targeted by the builder pattern, this package generates:
//
//   - A companion struct <Class>Builder carrying one private state field
//     per settable or replaced class field
//   - An exported fluent setter per exposed, non-immutable, non-replaced
//     field, returning the builder for chaining
//   - A variadic Add<Field> appender next to the setter of every
//     slice-typed field
//   - Build, assembling the class value from the collected state
//   - A package-level factory New<Class>Builder with declared field
//     defaults applied
//   - Included methods, appended verbatim after the generated members
//   - Replacement methods, appended last, each superseding the setters
//     of the fields it claims
//
// # Generated Output Structure
//
// The synthesizer produces the following files in the target directory:
//
//	{target}/
//	└── {class}_builder.go    # Builder struct, setters, Build, factory
//
// File names derive from the snake_case form of the class name, so class
// OrderLine lands in order_line_builder.go.
//
// # Member Composition Order
//
// Members are always emitted in a fixed order: builder struct, setters
// with their appenders, Build, factory, included methods, replacement
// methods. The order is stable across runs so generated diffs stay
// minimal.
//
// # Opaque Bodies
//
// Include and replace markers carry Go source text for their method
// bodies. The synthesizer never parses or rewrites those bodies; they are
// placed into the generated file verbatim. Imports the bodies reference
// are resolved by the goimports pass of the emission sink rather than by
// Jennifer's import tracking.
//
// # Usage
//
// This package is typically invoked through its convenience entry point:
//
//	import (
//	    "github.com/syssam/patterngen/compiler/gen"
//	    "github.com/syssam/patterngen/compiler/gen/builder"
//	    "github.com/syssam/patterngen/compiler/load"
//	)
//
//	classes, err := load.ReadDir("./schema")
//	if err != nil {
//	    return err
//	}
//	err = builder.Generate(ctx, classes, gen.WithTarget("./gen"))
//
// Or with explicit configuration:
//
//	c := gen.MustNewConfig(
//	    gen.WithTarget("./gen"),
//	    gen.WithSynthesizer(builder.New()),
//	    gen.WithWorkers(4),
//	)
//	err := gen.Generate(ctx, c, classes)
//
// # Error Handling
//
// The synthesizer reports non-fatal findings (conflicts, unresolved
// replace claims, unrecognized name formats) through the diagnostics
// reporter and keeps emitting best-effort. Failures that abort a class
// surface as structured error types from the gen package:
//
//	err := builder.Generate(ctx, classes, gen.WithTarget("./gen"))
//	if gen.IsGenerationError(err) {
//	    // inspect the reporter for per-class diagnostics
//	}
package builder
