package gen

import (
	"fmt"
	"go/token"
	"go/types"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/syssam/patterngen/caseconv"
	"github.com/syssam/patterngen/compiler/load"
	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
	"github.com/syssam/patterngen/schema/field"
)

// The following types and their exported methods are used by synthesizers
// to assemble the generated companions.
type (
	// Type represents one class under compilation: its validated fields
	// and methods, and the patterns targeting it.
	Type struct {
		*Config
		class *load.Class
		// Name holds the class name.
		Name string
		// Fields of the class, in declaration order.
		Fields []*Field
		fields map[string]*Field
		// Methods of the class, in declaration order.
		Methods []*Method
		methods map[string]*Method
		// Patterns resolved from the class's pattern tags, in tag order
		// and deduplicated.
		Patterns []pattern.Pattern
		// Pattern tags that did not resolve against the registry. They
		// are reported as warnings during generation.
		unknownPatterns []string
	}

	// Field holds the information of a class field used by synthesizers.
	Field struct {
		cfg *Config
		def *load.Field
		typ *Type
		// Name as declared in the description.
		Name string
		// Type holds the type information of the field.
		Type *field.TypeInfo
		// Default literal, rendered verbatim in the generated factory.
		// Empty means no default.
		Default string
		// Comment of the field.
		Comment string
		// Markers attached to the field.
		Markers []schema.Marker
	}

	// Method holds the information of a class method used by synthesizers.
	// Method names are emitted exactly as declared, they are never recased.
	Method struct {
		def *load.Method
		typ *Type
		// Name as declared in the description.
		Name string
		// Params of the method, in declaration order.
		Params []Param
		// Returns is nil for methods without a return value.
		Returns *field.TypeInfo
		// Comment of the method.
		Comment string
		// Markers attached to the method.
		Markers []schema.Marker
	}

	// Param of a method.
	Param struct {
		Name string
		Type *field.TypeInfo
	}
)

// NewType creates a validated Type from a loaded class description. A
// description the compiler cannot work with returns a StructuralError.
func NewType(c *Config, class *load.Class) (*Type, error) {
	typ := &Type{
		Config:  c,
		class:   class,
		Name:    class.Name,
		Fields:  make([]*Field, 0, len(class.Fields)),
		fields:  make(map[string]*Field, len(class.Fields)),
		Methods: make([]*Method, 0, len(class.Methods)),
		methods: make(map[string]*Method, len(class.Methods)),
	}
	if err := ValidClassName(class.Name); err != nil {
		return nil, NewStructuralError(class.Name, "", "invalid class name", err)
	}
	switch class.Kind {
	case "", load.KindStruct, load.KindInterface:
	default:
		return nil, NewStructuralError(class.Name, "",
			fmt.Sprintf("pattern markers can only be applied to a class or an interface, not %q", class.Kind), nil)
	}
	if class.Kind == load.KindInterface && len(class.Fields) > 0 {
		return nil, NewStructuralError(class.Name, class.Fields[0].Name,
			"interface descriptions cannot declare fields", nil)
	}
	for _, name := range class.Patterns {
		p, ok := pattern.ByMarkerName(name)
		if !ok {
			typ.unknownPatterns = append(typ.unknownPatterns, name)
			continue
		}
		if !slices.Contains(typ.Patterns, p) {
			typ.Patterns = append(typ.Patterns, p)
		}
	}
	for _, f := range class.Fields {
		tf := &Field{
			cfg:     c,
			def:     f,
			typ:     typ,
			Name:    f.Name,
			Type:    f.Info,
			Default: f.Default,
			Comment: f.Comment,
		}
		if err := typ.checkField(tf, f); err != nil {
			return nil, NewStructuralError(class.Name, f.Name, "", err)
		}
		markers, err := decodeMarkers(f.Markers)
		if err != nil {
			return nil, NewStructuralError(class.Name, f.Name, "invalid marker", err)
		}
		tf.Markers = markers
		typ.Fields = append(typ.Fields, tf)
		typ.fields[f.Name] = tf
	}
	for _, m := range class.Methods {
		tm := &Method{
			def:     m,
			typ:     typ,
			Name:    m.Name,
			Returns: m.Returns,
			Comment: m.Comment,
		}
		for _, p := range m.Params {
			tm.Params = append(tm.Params, Param{Name: p.Name, Type: p.Info})
		}
		if err := typ.checkMethod(tm, m); err != nil {
			return nil, NewStructuralError(class.Name, m.Name, "", err)
		}
		markers, err := decodeMarkers(m.Markers)
		if err != nil {
			return nil, NewStructuralError(class.Name, m.Name, "invalid marker", err)
		}
		tm.Markers = markers
		typ.Methods = append(typ.Methods, tm)
		typ.methods[m.Name] = tm
	}
	return typ, nil
}

// checkField validates one loaded field before it joins the type.
func (t *Type) checkField(tf *Field, f *load.Field) (err error) {
	switch {
	case f.Name == "":
		err = fmt.Errorf("field name cannot be empty")
	case !token.IsIdentifier(f.Name):
		err = fmt.Errorf("field name %q is not a valid Go identifier", f.Name)
	case f.Info == nil || !f.Info.Valid():
		err = fmt.Errorf("invalid type for field %s", f.Name)
	case t.fields[f.Name] != nil:
		err = fmt.Errorf("field %q redeclared for class %q", f.Name, t.Name)
	}
	return err
}

// checkMethod validates one loaded method before it joins the type.
func (t *Type) checkMethod(tm *Method, m *load.Method) (err error) {
	switch {
	case m.Name == "":
		err = fmt.Errorf("method name cannot be empty")
	case !token.IsIdentifier(m.Name):
		err = fmt.Errorf("method name %q is not a valid Go identifier", m.Name)
	case t.methods[m.Name] != nil:
		err = fmt.Errorf("method %q redeclared for class %q", m.Name, t.Name)
	}
	if err != nil {
		return err
	}
	for _, p := range tm.Params {
		switch {
		case p.Name == "" || !token.IsIdentifier(p.Name):
			return fmt.Errorf("method %q has an invalid parameter name %q", m.Name, p.Name)
		case p.Type == nil || !p.Type.Valid():
			return fmt.Errorf("invalid type for parameter %q of method %q", p.Name, m.Name)
		}
	}
	return nil
}

// decodeMarkers resolves marker wire forms back to schema markers.
func decodeMarkers(markers []*load.Marker) ([]schema.Marker, error) {
	if len(markers) == 0 {
		return nil, nil
	}
	ms := make([]schema.Marker, 0, len(markers))
	for _, m := range markers {
		affects, err := decodeAffects(m.Affects)
		if err != nil {
			return nil, err
		}
		switch m.Kind {
		case load.KindIgnore:
			ms = append(ms, schema.NewIgnore(affects...))
		case load.KindImmutable:
			ms = append(ms, schema.NewImmutable(affects...))
		case load.KindInclude:
			ms = append(ms, schema.NewInclude(m.Code, affects...))
		case load.KindReplace:
			r, err := schema.NewReplace(m.Code, m.Replaces, affects...)
			if err != nil {
				return nil, err
			}
			ms = append(ms, r)
		case load.KindAliased:
			if m.Alias == "" {
				return nil, fmt.Errorf("aliased marker requires an alias")
			}
			ms = append(ms, schema.NewAliased(m.Alias))
		default:
			return nil, fmt.Errorf("unknown marker kind %q", m.Kind)
		}
	}
	return ms, nil
}

// decodeAffects resolves pattern tags of an affects list.
func decodeAffects(names []string) ([]pattern.Pattern, error) {
	if len(names) == 0 {
		return nil, nil
	}
	affects := make([]pattern.Pattern, 0, len(names))
	for _, name := range names {
		p, ok := pattern.ByMarkerName(name)
		if !ok {
			return nil, fmt.Errorf("unknown pattern %q in affects list", name)
		}
		affects = append(affects, p)
	}
	return affects, nil
}

// ValidClassName determines if a class name can be processed by the
// compiler and used in generated identifiers and file names.
func ValidClassName(name string) error {
	// Check for empty name.
	if name == "" {
		return fmt.Errorf("class name cannot be empty")
	}
	// Check for path traversal characters to prevent directory escape attacks.
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("class name %q contains path separator characters", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("class name %q contains parent directory reference", name)
	}
	// Check for hidden files (names starting with dot).
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("class name %q cannot start with a dot", name)
	}
	// Validate that the name is a valid Go identifier.
	if !token.IsIdentifier(name) {
		return fmt.Errorf("class name %q is not a valid Go identifier", name)
	}
	// The lower-camel form of the name becomes the local variable of the
	// generated Build method (see Type.LocalName).
	local := strings.ToLower(name)
	if token.Lookup(local).IsKeyword() {
		return fmt.Errorf("class lowercase name conflicts with Go keyword %q", local)
	}
	if types.Universe.Lookup(local) != nil {
		return fmt.Errorf("class lowercase name conflicts with Go predeclared identifier %q", local)
	}
	return nil
}

// Kind returns the class kind, struct or interface.
func (t Type) Kind() string {
	if t.class.Kind == "" {
		return load.KindStruct
	}
	return t.class.Kind
}

// IsInterface reports whether the description declares an interface.
// Interface companions carry no state fields; their members come from
// included and replacement methods only.
func (t Type) IsInterface() bool {
	return t.class.Kind == load.KindInterface
}

// Targets reports whether the given pattern targets this class.
func (t Type) Targets(p pattern.Pattern) bool {
	return slices.Contains(t.Patterns, p)
}

// UnknownPatterns returns the pattern tags that did not resolve against
// the registry.
func (t Type) UnknownPatterns() []string {
	return t.unknownPatterns
}

// BuilderName returns the name of the generated companion type.
func (t Type) BuilderName() string {
	return t.Name + "Builder"
}

// FactoryName returns the name of the generated factory function.
func (t Type) FactoryName() string {
	return "New" + t.BuilderName()
}

// Receiver returns the receiver name of the generated builder methods.
// It makes sure the receiver name doesn't conflict with import names.
func (t Type) Receiver() string {
	return caseconv.Receiver(t.BuilderName())
}

// LocalName returns the lower-camel form of the class name, used as the
// local variable of the generated Build method. The second result
// reports whether the name format was recognized; unknown formats fall
// back to lowering the first rune and callers should warn.
func (t Type) LocalName() (string, bool) {
	name := t.Name
	if utf8.RuneCountInString(name) == 1 {
		return strings.ToLower(name), true
	}
	switch caseconv.Detect(name) {
	case caseconv.FormatCamel:
		return name, true
	case caseconv.FormatPascal:
		return caseconv.Camel(caseconv.Snake(name)), true
	case caseconv.FormatUnknown:
		return caseconv.LowerFirst(name), false
	default:
		return caseconv.Camel(strings.ToLower(name)), true
	}
}

// Package returns the package name of the generated file: the class
// override when declared, the generator target package otherwise.
func (t Type) Package() string {
	if t.class.Config.Package != "" {
		return t.class.Config.Package
	}
	return t.Config.pkg()
}

// Header returns the comment added at the top of the generated file.
func (t Type) Header() string {
	return t.Config.header()
}

// Pos returns the position information of the class description when it
// was loaded from a file.
func (t Type) Pos() string {
	return t.class.Pos
}

// HasField reports whether a field with the given name is declared.
func (t Type) HasField(name string) bool {
	return t.fields[name] != nil
}

// StateName returns the builder struct field carrying this field's
// state and ensures it doesn't conflict with Go keywords and is not
// exported.
func (f Field) StateName() string {
	return builderField(f.Name)
}

// SetterName returns the exported name of the generated setter.
func (f Field) SetterName() string {
	return caseconv.Pascal(f.Name)
}

// AppenderName returns the name of the generated variadic appender for
// slice fields.
func (f Field) AppenderName() string {
	return "Add" + caseconv.Pascal(f.Name)
}

// ParamName returns the parameter name used by the generated setter.
func (f Field) ParamName() string {
	return builderField(f.Name)
}

// AppenderParamName returns the parameter name used by the generated
// appender: the singularized field name.
func (f Field) AppenderParamName() string {
	return builderField(caseconv.Singularize(f.Name))
}

// HasAppender reports whether the field type is slice-spelled and gains
// a variadic appender next to its setter.
func (f Field) HasAppender() bool {
	return f.Type != nil && f.Type.Slice()
}

// HasDefault reports whether a default literal was declared.
func (f Field) HasDefault() bool {
	return f.Default != ""
}

// Narration returns the name used for this field in generated
// documentation: the alias when an aliased marker is attached, the
// declared name otherwise. Aliasing never renames emitted identifiers.
func (f Field) Narration() string {
	for _, m := range f.Markers {
		if a, ok := m.(schema.Aliased); ok && a.Alias != "" {
			return a.Alias
		}
	}
	return f.Name
}

// Narration returns the name used for this method in generated
// documentation.
func (m Method) Narration() string {
	for _, mk := range m.Markers {
		if a, ok := mk.(schema.Aliased); ok && a.Alias != "" {
			return a.Alias
		}
	}
	return m.Name
}

// Signature renders the method name with its parameter types, as used
// in conflict diagnostics: "Amount(int)".
func (m Method) Signature() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteString("(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.String())
	}
	b.WriteString(")")
	return b.String()
}

// builderField returns the builder struct field for the given name and
// ensures it doesn't conflict with Go keywords and is not exported.
func builderField(name string) string {
	if token.Lookup(name).IsKeyword() || strings.ToUpper(name[:1]) == name[:1] {
		return "_" + name
	}
	return name
}
