// Package schema provides the building blocks for describing classes to the
// pattern generator.
//
// The package defines the marker vocabulary; member descriptors live in its
// subpackages:
//
//   - [field]: field descriptors for class state
//   - [method]: method descriptors for hand-written companion methods
//
// # Quick Start
//
// Describe a class by embedding patterngen.Description and implementing the
// methods that apply:
//
//	type Item struct{ patterngen.Description }
//
//	func (Item) Patterns() []pattern.Pattern {
//	    return []pattern.Pattern{pattern.Builder}
//	}
//
//	func (Item) Fields() []patterngen.Field {
//	    return []patterngen.Field{
//	        field.String("name").Ignore(),
//	        field.String("providerName"),
//	        field.Int("amount").Alias("available"),
//	        field.Bool("isStocked"),
//	    }
//	}
//
//	func (Item) Methods() []patterngen.Method {
//	    return []patterngen.Method{
//	        method.New("provider").
//	            Param("p", field.NamedType("Provider")).
//	            Returns(field.NamedType("*ItemBuilder")).
//	            Replace("ib.providerName = p.Name()\nreturn ib", "providerName"),
//	    }
//	}
//
// # Markers
//
// Five marker kinds steer generation:
//
//	Ignore     the field never appears in the companion
//	Immutable  the field keeps no builder state and gets no setter
//	Include    a hand-written method is carried into the companion verbatim
//	Replace    a hand-written method supersedes the setters of named fields
//	Aliased    the member is narrated under another name in documentation
//
// Every marker except Aliased carries an affects set naming the patterns it
// addresses. The set may stay empty while exactly one pattern targets the
// class; once several patterns target the same class, markers must name
// their targets and empty sets are rejected during generation.
//
// # Opaque bodies
//
// Include and Replace carry the method body as plain source text. Bodies are
// emitted verbatim and address the companion through its receiver, which is
// derived from the builder type name (ItemBuilder becomes ib). The generator
// never parses bodies; they are the author's contract with the target
// package.
package schema
