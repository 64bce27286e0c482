package builder

import (
	"context"

	"github.com/syssam/patterngen/compiler/gen"
	"github.com/syssam/patterngen/compiler/load"
)

// Generate compiles class descriptions into builder companions. It wires
// the builder synthesizer into the config and delegates to gen.Generate.
// This is the recommended entry point for code generation.
//
// Example:
//
//	classes, err := load.ReadDir("./schema")
//	if err != nil {
//	    return err
//	}
//	err = builder.Generate(ctx, classes, gen.WithTarget("./gen"))
func Generate(ctx context.Context, classes []*load.Class, opts ...gen.Option) error {
	c, err := gen.NewConfig(append([]gen.Option{gen.WithSynthesizer(New())}, opts...)...)
	if err != nil {
		return err
	}
	return gen.Generate(ctx, c, classes)
}

// GenerateDir loads every class description under dir and generates
// builder companions for them.
func GenerateDir(ctx context.Context, dir string, opts ...gen.Option) error {
	classes, err := load.ReadDir(dir)
	if err != nil {
		return err
	}
	return Generate(ctx, classes, opts...)
}
