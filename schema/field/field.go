package field

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
)

// A Type represents a field type in a class description.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeUUID
	TypeBytes
	TypeString
	TypeOther
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeUUID:    "uuid.UUID",
	TypeBytes:   "[]byte",
	TypeString:  "string",
	TypeOther:   "other",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint:    "uint",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
}

// String returns the textual representation of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a known type.
func (t Type) Valid() bool { return t > TypeInvalid && t < endTypes }

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool { return t >= TypeInt8 && t < endTypes }

// TypeInfo holds type information of a field or a method parameter. When
// Ident is set it overrides Type and is rendered as spelled, optionally
// qualified by PkgPath.
type TypeInfo struct {
	Type    Type   `json:"type" yaml:"type"`
	Ident   string `json:"ident,omitempty" yaml:"ident,omitempty"`
	PkgPath string `json:"pkg_path,omitempty" yaml:"pkg_path,omitempty"`
}

// String returns the Go source spelling of the type.
func (t TypeInfo) String() string {
	if t.Ident != "" {
		return t.Ident
	}
	if t.Type < endTypes {
		return typeNames[t.Type]
	}
	return typeNames[TypeInvalid]
}

// Valid reports whether the info denotes a usable type.
func (t TypeInfo) Valid() bool {
	if t.Type == TypeOther {
		return t.Ident != ""
	}
	return t.Type.Valid()
}

// Numeric reports whether the info denotes a plain numeric type.
func (t TypeInfo) Numeric() bool { return t.Ident == "" && t.Type.Numeric() }

// Slice reports whether the info spells a slice type.
func (t TypeInfo) Slice() bool { return strings.HasPrefix(t.Ident, "[]") }

// Elem returns the element info of a slice-spelled info.
func (t TypeInfo) Elem() (TypeInfo, bool) {
	if !t.Slice() {
		return TypeInfo{}, false
	}
	ident := strings.TrimPrefix(t.Ident, "[]")
	if bt, ok := builtinTypes[ident]; ok {
		return TypeInfo{Type: bt}, true
	}
	return TypeInfo{Type: TypeOther, Ident: ident, PkgPath: t.PkgPath}, true
}

var builtinTypes = map[string]Type{
	"bool":    TypeBool,
	"string":  TypeString,
	"int8":    TypeInt8,
	"int16":   TypeInt16,
	"int32":   TypeInt32,
	"int":     TypeInt,
	"int64":   TypeInt64,
	"uint8":   TypeUint8,
	"uint16":  TypeUint16,
	"uint32":  TypeUint32,
	"uint":    TypeUint,
	"uint64":  TypeUint64,
	"float32": TypeFloat32,
	"float64": TypeFloat64,
}

// TypeOf returns the info of a builtin type.
func TypeOf(t Type) TypeInfo { return TypeInfo{Type: t} }

// NamedType returns the info of a type as spelled in the target package,
// e.g. "Provider", "*ItemBuilder" or "[]Provider".
func NamedType(ident string) TypeInfo { return TypeInfo{Type: TypeOther, Ident: ident} }

// QualType returns the info of a named type imported from pkgPath.
func QualType(pkgPath, ident string) TypeInfo {
	return TypeInfo{Type: TypeOther, Ident: ident, PkgPath: pkgPath}
}

// ParseType resolves a Go source spelling to its type info. Builtins map
// to their kind, "time.Time" and "uuid.UUID" to theirs, import-path
// qualified spellings such as "github.com/google/uuid.UUID" keep their
// package path, and anything else loads as a named type.
func ParseType(s string) TypeInfo {
	switch {
	case s == "":
		return TypeInfo{}
	case s == "time.Time":
		return TypeInfo{Type: TypeTime}
	case s == "uuid.UUID":
		return TypeInfo{Type: TypeUUID}
	case s == "[]byte":
		return TypeInfo{Type: TypeBytes}
	}
	if t, ok := builtinTypes[s]; ok {
		return TypeInfo{Type: t}
	}
	if i := strings.LastIndex(s, "."); i > 0 && strings.Contains(s[:i], "/") {
		return QualType(s[:i], s[i+1:])
	}
	return NamedType(s)
}

// UnmarshalYAML decodes the scalar source spelling used by YAML class
// descriptions, e.g. "string", "[]string" or "Provider".
func (t *TypeInfo) UnmarshalYAML(node *yaml.Node) error {
	var spell string
	if err := node.Decode(&spell); err != nil {
		return err
	}
	*t = ParseType(spell)
	return nil
}

// MarshalYAML encodes the info back to its source spelling.
func (t TypeInfo) MarshalYAML() (any, error) {
	if t.PkgPath != "" {
		return t.PkgPath + "." + t.Ident, nil
	}
	return t.String(), nil
}

// A Descriptor for field configuration.
type Descriptor struct {
	Name    string          // field name
	Info    TypeInfo        // field type info
	Default string          // default literal, emitted verbatim
	Comment string          // optional narration
	Markers []schema.Marker // attached rule markers
	Err     error           // first error caught while building the descriptor
}

// Builder is the configurator of field descriptors.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, info TypeInfo) *Builder {
	b := &Builder{desc: &Descriptor{Name: name, Info: info}}
	if name == "" {
		b.desc.Err = fmt.Errorf("empty field name")
	}
	return b
}

// String returns a new string field with the given name.
func String(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeString}) }

// Int returns a new int field with the given name.
func Int(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeInt}) }

// Int64 returns a new int64 field with the given name.
func Int64(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeInt64}) }

// Float64 returns a new float64 field with the given name.
func Float64(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeFloat64}) }

// Bool returns a new bool field with the given name.
func Bool(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeBool}) }

// Time returns a new time.Time field with the given name.
func Time(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeTime}) }

// UUID returns a new uuid.UUID field with the given name.
func UUID(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeUUID}) }

// Bytes returns a new []byte field with the given name.
func Bytes(name string) *Builder { return newBuilder(name, TypeInfo{Type: TypeBytes}) }

// Strings returns a new []string field with the given name.
func Strings(name string) *Builder {
	return newBuilder(name, TypeInfo{Type: TypeOther, Ident: "[]string"})
}

// Other returns a new field with the given name and an explicit type info.
// Use it for named, pointer and slice types the builtin constructors do not
// cover.
func Other(name string, info TypeInfo) *Builder {
	b := newBuilder(name, info)
	if b.desc.Err == nil && !info.Valid() {
		b.desc.Err = fmt.Errorf("invalid type info %q", info.String())
	}
	return b
}

// Default sets the default literal of the field. The literal is Go source
// text emitted verbatim into the generated factory, e.g. `"unknown"` or `3`.
func (b *Builder) Default(lit string) *Builder {
	b.desc.Default = lit
	return b
}

// Comment sets the narration of the field used in generated documentation.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Ignore excludes the field from companions generated for the given
// patterns. An empty affects set addresses whichever single pattern targets
// the class.
func (b *Builder) Ignore(affects ...pattern.Pattern) *Builder {
	b.desc.Markers = append(b.desc.Markers, schema.NewIgnore(affects...))
	return b
}

// Immutable keeps the field out of the generated mutation surface for the
// given patterns.
func (b *Builder) Immutable(affects ...pattern.Pattern) *Builder {
	b.desc.Markers = append(b.desc.Markers, schema.NewImmutable(affects...))
	return b
}

// Alias narrates the field under the given name in generated documentation.
// It never renames emitted identifiers.
func (b *Builder) Alias(name string) *Builder {
	b.desc.Markers = append(b.desc.Markers, schema.NewAliased(name))
	return b
}

// Descriptor implements the patterngen.Field interface by returning the
// descriptor of the field.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
