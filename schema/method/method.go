// Package method provides fluent builders for describing hand-written
// companion methods to the pattern generator.
//
// A method description names a member of the source class whose body is
// carried into generated companions verbatim, either alongside the generated
// setters (Include) or in place of some of them (Replace):
//
//	method.New("transitions").
//	    Param("deposited", field.TypeOf(field.TypeInt)).
//	    Param("withdrawn", field.TypeOf(field.TypeInt)).
//	    Returns(field.NamedType("*ItemBuilder")).
//	    Replace("ib.amount = deposited - withdrawn\nreturn ib", "amount")
package method

import (
	"fmt"

	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
	"github.com/syssam/patterngen/schema/field"
)

// A Param describes one method parameter.
type Param struct {
	Name string
	Info field.TypeInfo
}

// A Descriptor for method configuration. Returns stays zero for methods
// without a return value.
type Descriptor struct {
	Name    string
	Params  []Param
	Returns field.TypeInfo
	Comment string
	Markers []schema.Marker
	Err     error
}

// Builder is the configurator of method descriptors.
type Builder struct {
	desc *Descriptor
}

// New returns a new method descriptor builder with the given name. The name
// is emitted exactly as declared, it is never recased.
func New(name string) *Builder {
	b := &Builder{desc: &Descriptor{Name: name}}
	if name == "" {
		b.desc.Err = fmt.Errorf("empty method name")
	}
	return b
}

// Param appends a parameter with the given name and type.
func (b *Builder) Param(name string, info field.TypeInfo) *Builder {
	b.desc.Params = append(b.desc.Params, Param{Name: name, Info: info})
	return b
}

// Returns sets the return type of the method.
func (b *Builder) Returns(info field.TypeInfo) *Builder {
	b.desc.Returns = info
	return b
}

// Comment sets the narration of the method used in generated documentation.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Include carries the method into generated companions verbatim. Code is the
// body as opaque source text.
func (b *Builder) Include(code string, affects ...pattern.Pattern) *Builder {
	b.desc.Markers = append(b.desc.Markers, schema.NewInclude(code, affects...))
	return b
}

// Replace substitutes the method for the generated setters of the named
// fields. At least one field name is required. The affects set stays empty;
// use ReplaceFor to address specific patterns.
func (b *Builder) Replace(code string, replaces ...string) *Builder {
	return b.ReplaceFor(code, replaces)
}

// ReplaceFor is Replace with an explicit affects set.
func (b *Builder) ReplaceFor(code string, replaces []string, affects ...pattern.Pattern) *Builder {
	m, err := schema.NewReplace(code, replaces, affects...)
	if err != nil {
		if b.desc.Err == nil {
			b.desc.Err = schema.NewMarkerError(b.desc.Name, "replace", err)
		}
		return b
	}
	b.desc.Markers = append(b.desc.Markers, m)
	return b
}

// Alias narrates the method under the given name in generated documentation.
func (b *Builder) Alias(name string) *Builder {
	b.desc.Markers = append(b.desc.Markers, schema.NewAliased(name))
	return b
}

// Descriptor implements the patterngen.Method interface by returning the
// descriptor of the method.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
