// Package patterngen is the interface between class descriptions and the
// patterngen code generator. A class description declares the fields and
// methods of a target type together with the pattern markers that steer
// how its companion type is synthesized.
package patterngen

import (
	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema/field"
	"github.com/syssam/patterngen/schema/method"
)

type (
	// Class is the interface that all class descriptions implement.
	// An embedded Description provides default implementations, so a
	// description only declares the members it actually has:
	//
	//	type Item struct {
	//		patterngen.Description
	//	}
	//
	//	func (Item) Patterns() []pattern.Pattern {
	//		return []pattern.Pattern{pattern.Builder}
	//	}
	//
	//	func (Item) Fields() []patterngen.Field {
	//		return []patterngen.Field{
	//			field.String("name"),
	//			field.Int("amount"),
	//		}
	//	}
	Class interface {
		// Fields returns the field descriptions of the class.
		Fields() []Field

		// Methods returns the method descriptions of the class.
		Methods() []Method

		// Patterns returns the patterns targeting the class. A class
		// without patterns is loaded but never generates anything.
		Patterns() []pattern.Pattern

		// Config returns optional class-level generation settings.
		Config() Config
	}

	// Config holds class-level codegen configuration. The zero value
	// inherits everything from the generator configuration.
	Config struct {
		// Package overrides the package name of the generated file.
		Package string `json:"package,omitempty" yaml:"package,omitempty"`
	}

	// Field is implemented by the descriptor builders of the
	// schema/field package.
	Field interface {
		Descriptor() *field.Descriptor
	}

	// Method is implemented by the descriptor builders of the
	// schema/method package.
	Method interface {
		Descriptor() *method.Descriptor
	}
)

// Description is the default implementation of Class. Embed it in a
// class description to avoid spelling out empty members.
type Description struct{}

// Fields of the description.
func (Description) Fields() []Field { return nil }

// Methods of the description.
func (Description) Methods() []Method { return nil }

// Patterns targeting the description.
func (Description) Patterns() []pattern.Pattern { return nil }

// Config of the description.
func (Description) Config() Config { return Config{} }

// Interfacer is the interface implemented by descriptions of interface
// types. Interface descriptions carry methods only; their companions are
// assembled entirely through included and replacement methods.
type Interfacer interface {
	IsInterface()
}

// Interface is the embeddable base for interface-kind descriptions.
type Interface struct {
	Description
}

// IsInterface implements Interfacer.
func (Interface) IsInterface() {}
