// Package gen compiles class descriptions into generated companion code.
//
// This package is the rule-resolution core of patterngen: it decides,
// per class and per pattern, which members the generated companion
// carries, detects collisions between generated and user-declared
// members, and orchestrates synthesis and emission.
//
// # Architecture
//
// The compilation pipeline follows this flow:
//
//	Class description (load.Class, from YAML or DSL)
//	        ↓
//	   Type (validated view: fields, methods, markers, patterns)
//	        ↓
//	   Ambiguity resolution + affects validation
//	        ↓
//	   MemberSets (exposed, immutable, included, replacements)
//	        ↓
//	   Conflict detection (diagnostics only)
//	        ↓
//	   Synthesizer (pattern-specific, e.g. builder)
//	        ↓
//	   Sink (goimports + write under target)
//
// Classes are processed concurrently; stages within one class run
// strictly in the order above and share nothing with other classes
// besides the diagnostics reporter.
//
// # Key Types
//
// The package provides several key types:
//
//   - Type: Validated view of one class with resolved pattern tags
//   - Field, Method: Class members with their schema markers
//   - MemberSets: Per-pattern classification of the members
//   - Config: Global configuration for a generation run
//   - Reporter: Concurrency-safe diagnostics collection
//   - Synthesizer: Pattern-specific code assembly (implemented by the
//     builder package)
//   - Sink: Emission target (DirSink formats with goimports and writes)
//
// # Marker Resolution
//
// Each field marker (ignore, immutable, aliased) and method marker
// (include, replace, aliased) may carry an affects list naming the
// patterns it targets. A marker without one targets the single pattern
// on the class; when several patterns target the class, such a marker is
// ambiguous: ValidateAffects reports an error for it and classification
// excludes it. Precedence between markers claiming the same member is
// fixed: ignore beats everything, a replacement supersedes both an
// immutable marker on its claimed fields and an include marker on its
// own method.
//
// # Error Handling
//
// The package uses structured error types for better error handling:
//
//   - StructuralError: Class descriptions the compiler cannot process
//   - AmbiguityError: Rule markers missing affects under ambiguity
//   - ConfigError: Configuration errors
//   - EmissionError: Formatting or write failures
//   - GenerationError: Per-run summary when any class failed
//
// Example error handling:
//
//	err := gen.Generate(ctx, config, classes)
//	if err != nil {
//	    if gen.IsGenerationError(err) {
//	        // Inspect the reporter for per-class diagnostics
//	    }
//	    return err
//	}
//
// Diagnostics never abort a run: broken classes are surfaced through the
// Reporter while the remaining classes keep generating, and Generate
// returns a GenerationError only after all classes finished.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./gen"),
//	    gen.WithSynthesizer(builder.New()),
//	)
//
// Additional options available:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./gen"),
//	    gen.WithSynthesizer(builder.New()),
//	    gen.WithWorkers(4),                  // Bound concurrency
//	    gen.WithHeader("// Custom header"),  // Custom file header
//	    gen.WithForce(true),                 // Bypass the cache
//	)
//
// # Usage
//
// The recommended way to generate code is through the builder package:
//
//	import "github.com/syssam/patterngen/compiler/gen/builder"
//
//	err := builder.GenerateDir(ctx, "./schema", gen.WithTarget("./gen"))
//
// Or manually configure the run:
//
//	import (
//	    "github.com/syssam/patterngen/compiler/gen"
//	    "github.com/syssam/patterngen/compiler/gen/builder"
//	)
//
//	c := gen.MustNewConfig(
//	    gen.WithTarget("./gen"),
//	    gen.WithSynthesizer(builder.New()),
//	)
//	err := gen.Generate(ctx, c, classes)
//
// # Code Organization
//
// The package is organized into several files:
//
//   - ambiguity.go: Pattern-ambiguity resolution and affects validation
//   - cache.go: Digest-based generation cache
//   - classify.go: Member classification into MemberSets
//   - config.go: Config type and grouped configuration
//   - conflict.go: Collision detection between members
//   - diagnostics.go: Severity, Diagnostic and Reporter
//   - errors.go: Structured error types
//   - generate.go: Run orchestration across classes
//   - option.go: Functional option pattern for configuration
//   - type.go: Validated Type view and member helpers
//   - writer.go: Emission sinks
package gen
