package load

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/syssam/patterngen"
	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
	"github.com/syssam/patterngen/schema/field"
	"github.com/syssam/patterngen/schema/method"
)

// Class kinds accepted by the loader.
const (
	KindStruct    = "struct"
	KindInterface = "interface"
)

// Marker kinds carried on loaded fields and methods.
const (
	KindIgnore    = "ignore"
	KindImmutable = "immutable"
	KindInclude   = "include"
	KindReplace   = "replace"
	KindAliased   = "aliased"
)

// Class represents a patterngen.Class that was loaded from a user package
// or a YAML description file.
type Class struct {
	Name     string            `json:"name,omitempty" yaml:"name"`
	Kind     string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Pos      string            `json:"-" yaml:"-"`
	Config   patterngen.Config `json:"config,omitempty" yaml:"config,omitempty"`
	Patterns []string          `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Fields   []*Field          `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods  []*Method         `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Field represents a patterngen.Field that was loaded from a user package
// or a YAML description file.
type Field struct {
	Name    string          `json:"name,omitempty" yaml:"name"`
	Info    *field.TypeInfo `json:"type,omitempty" yaml:"type"`
	Default string          `json:"default,omitempty" yaml:"default,omitempty"`
	Comment string          `json:"comment,omitempty" yaml:"comment,omitempty"`
	Markers []*Marker       `json:"markers,omitempty" yaml:"markers,omitempty"`
}

// Method represents a patterngen.Method that was loaded from a user
// package or a YAML description file.
type Method struct {
	Name    string          `json:"name,omitempty" yaml:"name"`
	Params  []*Param        `json:"params,omitempty" yaml:"params,omitempty"`
	Returns *field.TypeInfo `json:"returns,omitempty" yaml:"returns,omitempty"`
	Comment string          `json:"comment,omitempty" yaml:"comment,omitempty"`
	Markers []*Marker       `json:"markers,omitempty" yaml:"markers,omitempty"`
}

// Param represents one parameter of a loaded method.
type Param struct {
	Name string          `json:"name,omitempty" yaml:"name"`
	Info *field.TypeInfo `json:"type,omitempty" yaml:"type"`
}

// Marker is the wire form of a schema.Marker. Kind selects the rule and
// decides which of the remaining members carry meaning.
type Marker struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Affects  []string `json:"affects,omitempty" yaml:"affects,omitempty"`
	Code     string   `json:"code,omitempty" yaml:"code,omitempty"`
	Replaces []string `json:"replaces,omitempty" yaml:"replaces,omitempty"`
	Alias    string   `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// NewField creates a loaded field from a field descriptor.
// It returns an error if the descriptor contains an error.
func NewField(fd *field.Descriptor) (*Field, error) {
	if fd.Err != nil {
		return nil, fmt.Errorf("field %q: %v", fd.Name, fd.Err)
	}
	if !fd.Info.Valid() {
		return nil, fmt.Errorf("missing type info for field %q", fd.Name)
	}
	markers, err := newMarkers(fd.Markers)
	if err != nil {
		return nil, fmt.Errorf("field %q: %v", fd.Name, err)
	}
	info := fd.Info
	return &Field{
		Name:    fd.Name,
		Info:    &info,
		Default: fd.Default,
		Comment: fd.Comment,
		Markers: markers,
	}, nil
}

// NewMethod creates a loaded method from a method descriptor.
// It returns an error if the descriptor contains an error.
func NewMethod(md *method.Descriptor) (*Method, error) {
	if md.Err != nil {
		return nil, fmt.Errorf("method %q: %v", md.Name, md.Err)
	}
	markers, err := newMarkers(md.Markers)
	if err != nil {
		return nil, fmt.Errorf("method %q: %v", md.Name, err)
	}
	m := &Method{
		Name:    md.Name,
		Comment: md.Comment,
		Markers: markers,
	}
	for _, p := range md.Params {
		if !p.Info.Valid() {
			return nil, fmt.Errorf("method %q: missing type info for parameter %q", md.Name, p.Name)
		}
		info := p.Info
		m.Params = append(m.Params, &Param{Name: p.Name, Info: &info})
	}
	if md.Returns.Valid() {
		ret := md.Returns
		m.Returns = &ret
	}
	return m, nil
}

// newMarkers converts schema markers to their wire form.
func newMarkers(markers []schema.Marker) ([]*Marker, error) {
	ms := make([]*Marker, 0, len(markers))
	for _, m := range markers {
		switch m := m.(type) {
		case schema.Ignore:
			ms = append(ms, &Marker{Kind: KindIgnore, Affects: markerNames(m.Affects)})
		case schema.Immutable:
			ms = append(ms, &Marker{Kind: KindImmutable, Affects: markerNames(m.Affects)})
		case schema.Include:
			ms = append(ms, &Marker{Kind: KindInclude, Code: m.Code, Affects: markerNames(m.Affects)})
		case schema.Replace:
			if len(m.Replaces) == 0 {
				return nil, schema.ErrEmptyReplaces
			}
			ms = append(ms, &Marker{Kind: KindReplace, Code: m.Code, Replaces: m.Replaces, Affects: markerNames(m.Affects)})
		case schema.Aliased:
			ms = append(ms, &Marker{Kind: KindAliased, Alias: m.Alias})
		default:
			return nil, fmt.Errorf("unknown marker type %T", m)
		}
	}
	if len(ms) == 0 {
		return nil, nil
	}
	return ms, nil
}

func markerNames(affects []pattern.Pattern) []string {
	if len(affects) == 0 {
		return nil
	}
	names := make([]string, len(affects))
	for i, p := range affects {
		names[i] = p.MarkerName()
	}
	return names
}

// MarshalClass encodes the patterngen.Class interface into a JSON buffer
// that can be decoded back into the Class objects declared above.
func MarshalClass(class patterngen.Class) (b []byte, err error) {
	c := &Class{
		Name:   indirect(reflect.TypeOf(class)).Name(),
		Kind:   KindStruct,
		Config: class.Config(),
	}
	if _, ok := class.(patterngen.Interfacer); ok {
		c.Kind = KindInterface
	}
	patterns, err := safePatterns(class)
	if err != nil {
		return nil, fmt.Errorf("class %q: %w", c.Name, err)
	}
	for _, p := range patterns {
		c.Patterns = append(c.Patterns, p.MarkerName())
	}
	if err = c.loadFields(class); err != nil {
		return nil, fmt.Errorf("class %q: %w", c.Name, err)
	}
	if err = c.loadMethods(class); err != nil {
		return nil, fmt.Errorf("class %q: %w", c.Name, err)
	}
	return json.Marshal(c)
}

// UnmarshalClass decodes the given buffer to a loaded class.
func UnmarshalClass(buf []byte) (*Class, error) {
	c := &Class{}
	if err := json.Unmarshal(buf, c); err != nil {
		return nil, err
	}
	if err := c.defaults(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewClass converts a class description into its loaded form through the
// canonical serialized representation.
func NewClass(class patterngen.Class) (*Class, error) {
	buf, err := MarshalClass(class)
	if err != nil {
		return nil, err
	}
	return UnmarshalClass(buf)
}

// loadFields loads fields to the class from patterngen.Class.
func (c *Class) loadFields(class patterngen.Class) error {
	fields, err := safeFields(class)
	if err != nil {
		return err
	}
	for _, f := range fields {
		cf, err := NewField(f.Descriptor())
		if err != nil {
			return err
		}
		c.Fields = append(c.Fields, cf)
	}
	return nil
}

// loadMethods loads methods to the class from patterngen.Class.
func (c *Class) loadMethods(class patterngen.Class) error {
	methods, err := safeMethods(class)
	if err != nil {
		return err
	}
	for _, m := range methods {
		cm, err := NewMethod(m.Descriptor())
		if err != nil {
			return err
		}
		c.Methods = append(c.Methods, cm)
	}
	return nil
}

// defaults normalizes a decoded class: a missing kind means struct, any
// other kind than struct or interface is rejected.
func (c *Class) defaults() error {
	if c.Name == "" {
		return fmt.Errorf("missing class name")
	}
	switch c.Kind {
	case "":
		c.Kind = KindStruct
	case KindStruct, KindInterface:
	default:
		return fmt.Errorf("class %q: unsupported kind %q (want %q or %q)", c.Name, c.Kind, KindStruct, KindInterface)
	}
	return nil
}

// safeFields wraps the class.Fields method with recover to ensure no
// panics in marshaling.
func safeFields(fd interface{ Fields() []patterngen.Field }) (fields []patterngen.Field, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Fields panics: %v", fd, v)
			fields = nil
		}
	}()
	return fd.Fields(), nil
}

// safeMethods wraps the class.Methods method with recover to ensure no
// panics in marshaling.
func safeMethods(md interface{ Methods() []patterngen.Method }) (methods []patterngen.Method, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Methods panics: %v", md, v)
			methods = nil
		}
	}()
	return md.Methods(), nil
}

// safePatterns wraps the class.Patterns method with recover to ensure no
// panics in marshaling.
func safePatterns(class patterngen.Class) (patterns []pattern.Pattern, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Patterns panics: %v", class, v)
			patterns = nil
		}
	}()
	return class.Patterns(), nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
