package builder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/patterngen/compiler/gen"
	"github.com/syssam/patterngen/compiler/load"
	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema/field"
)

func typeInfo(t field.Type) *field.TypeInfo {
	return &field.TypeInfo{Type: t}
}

func identInfo(ident string) *field.TypeInfo {
	return &field.TypeInfo{Type: field.TypeOther, Ident: ident}
}

// itemClass declares the inventory item walkthrough: an ignored field, a
// replaced field, an aliased field, two replacement methods and one
// included method.
func itemClass() *load.Class {
	return &load.Class{
		Name:     "Item",
		Patterns: []string{"builder"},
		Fields: []*load.Field{
			{Name: "name", Info: typeInfo(field.TypeString), Markers: []*load.Marker{{Kind: load.KindIgnore}}},
			{Name: "providerName", Info: typeInfo(field.TypeString)},
			{Name: "amount", Info: typeInfo(field.TypeInt), Markers: []*load.Marker{{Kind: load.KindAliased, Alias: "available"}}},
		},
		Methods: []*load.Method{
			{
				Name:    "provider",
				Params:  []*load.Param{{Name: "p", Info: identInfo("Provider")}},
				Returns: identInfo("*ItemBuilder"),
				Markers: []*load.Marker{{
					Kind:     load.KindReplace,
					Replaces: []string{"providerName"},
					Code:     "ib.providerName = p.Name()\nreturn ib",
				}},
			},
			{
				Name:    "transitions",
				Params:  []*load.Param{{Name: "deposited", Info: typeInfo(field.TypeInt)}, {Name: "withdrawn", Info: typeInfo(field.TypeInt)}},
				Returns: identInfo("*ItemBuilder"),
				Markers: []*load.Marker{{
					Kind:     load.KindReplace,
					Replaces: []string{"amount"},
					Code:     "ib.amount += deposited - withdrawn\nreturn ib",
				}},
			},
			{
				Name:    "IsStocked",
				Returns: typeInfo(field.TypeBool),
				Markers: []*load.Marker{{Kind: load.KindInclude, Code: "return ib.amount > 0"}},
			},
		},
	}
}

// render classifies the class for the builder pattern and returns the
// synthesized source.
func render(t *testing.T, cls *load.Class) (string, *gen.Reporter) {
	t.Helper()
	typ, err := gen.NewType(&gen.Config{Package: "shop"}, cls)
	require.NoError(t, err)
	rep := gen.NewReporter(nil)
	sets := gen.Classify(typ, pattern.Builder, gen.Ambiguity(typ), rep)
	f, err := New().Synthesize(typ, sets, rep)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))
	return buf.String(), rep
}

func TestSynthesizeItem(t *testing.T) {
	src, rep := render(t, itemClass())
	assert.False(t, rep.HasErrors())

	t.Run("file shape", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(src, "// Code generated by patterngen. DO NOT EDIT."))
		assert.Contains(t, src, "package shop")
	})

	t.Run("builder struct keeps replaced state", func(t *testing.T) {
		assert.Contains(t, src, "// ItemBuilder assembles Item values step by step.")
		assert.Contains(t, src, "type ItemBuilder struct")
		assert.Contains(t, src, "providerName string")
		assert.Regexp(t, `amount\s+int`, src)
		// The ignored field has no state slot.
		assert.NotRegexp(t, `\bname\s+string`, src)
	})

	t.Run("no setters for ignored or replaced fields", func(t *testing.T) {
		assert.NotContains(t, src, ") Name(")
		assert.NotContains(t, src, ") ProviderName(")
		assert.NotContains(t, src, ") Amount(")
		// The alias names documentation, never members.
		assert.NotContains(t, src, ") Available(")
	})

	t.Run("build copies the state fields", func(t *testing.T) {
		assert.Contains(t, src, "// Build assembles and returns the Item.")
		assert.Contains(t, src, "func (ib *ItemBuilder) Build() *Item {")
		assert.Contains(t, src, "item := &Item{}")
		assert.Contains(t, src, "item.providerName = ib.providerName")
		assert.Contains(t, src, "item.amount = ib.amount")
		assert.Contains(t, src, "return item")
	})

	t.Run("factory", func(t *testing.T) {
		assert.Contains(t, src, "// NewItemBuilder returns a fresh builder for Item with declared defaults applied.")
		assert.Contains(t, src, "func NewItemBuilder() *ItemBuilder {")
		assert.Contains(t, src, "return &ItemBuilder{}")
	})

	t.Run("included method body is verbatim", func(t *testing.T) {
		assert.Contains(t, src, "// IsStocked is copied from the Item description.")
		assert.Contains(t, src, "func (ib *ItemBuilder) IsStocked() bool {")
		assert.Contains(t, src, "return ib.amount > 0")
	})

	t.Run("replacement methods", func(t *testing.T) {
		assert.Contains(t, src, "// provider replaces the generated setter for providerName.")
		assert.Contains(t, src, "func (ib *ItemBuilder) provider(p Provider) *ItemBuilder {")
		assert.Contains(t, src, "ib.providerName = p.Name()")

		assert.Contains(t, src, "// transitions replaces the generated setter for amount.")
		assert.Contains(t, src, "func (ib *ItemBuilder) transitions(deposited int, withdrawn int) *ItemBuilder {")
		assert.Contains(t, src, "ib.amount += deposited - withdrawn")
	})

	t.Run("member order is stable", func(t *testing.T) {
		order := []string{
			"type ItemBuilder struct",
			") Build() *Item",
			"func NewItemBuilder()",
			") IsStocked() bool",
			") provider(",
			") transitions(",
		}
		last := -1
		for _, member := range order {
			idx := strings.Index(src, member)
			require.NotEqual(t, -1, idx, member)
			assert.Greater(t, idx, last, member)
			last = idx
		}
	})
}

func TestSynthesizeSetters(t *testing.T) {
	cls := &load.Class{
		Name:     "Post",
		Patterns: []string{"builder"},
		Fields: []*load.Field{
			{Name: "title", Info: typeInfo(field.TypeString), Comment: "display title"},
			{Name: "tags", Info: identInfo("[]string")},
			{Name: "stars", Info: typeInfo(field.TypeInt), Default: "3"},
		},
	}
	src, rep := render(t, cls)
	assert.Empty(t, rep.Diagnostics())

	t.Run("fluent setter", func(t *testing.T) {
		assert.Contains(t, src, "// Title sets the title state and returns the builder.")
		assert.Contains(t, src, "func (pb *PostBuilder) Title(title string) *PostBuilder {")
		assert.Contains(t, src, "pb.title = title")
		assert.Contains(t, src, "return pb")
	})

	t.Run("slice field gains an appender", func(t *testing.T) {
		assert.Contains(t, src, "func (pb *PostBuilder) Tags(tags []string) *PostBuilder {")
		assert.Contains(t, src, "// AddTags appends to the tags state and returns the builder.")
		assert.Contains(t, src, "func (pb *PostBuilder) AddTags(tag ...string) *PostBuilder {")
		assert.Contains(t, src, "pb.tags = append(pb.tags, tag...)")
	})

	t.Run("field comment carried to the state", func(t *testing.T) {
		assert.Contains(t, src, "// display title")
	})

	t.Run("defaults applied in the factory", func(t *testing.T) {
		assert.Contains(t, src, "return &PostBuilder{stars: 3}")
	})
}

func TestSynthesizeDefaults(t *testing.T) {
	t.Run("string default literal", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Post",
			Patterns: []string{"builder"},
			Fields: []*load.Field{
				{Name: "state", Info: typeInfo(field.TypeString), Default: `"draft"`},
			},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, `return &PostBuilder{state: "draft"}`)
	})

	t.Run("expression default literal", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Post",
			Patterns: []string{"builder"},
			Fields: []*load.Field{
				{Name: "createdAt", Info: typeInfo(field.TypeTime), Default: "time.Now()"},
			},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, "createdAt: time.Now()")
	})

	t.Run("default without a state slot warns", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Post",
			Patterns: []string{"builder"},
			Fields: []*load.Field{
				{Name: "sku", Info: typeInfo(field.TypeString), Default: `"X"`, Markers: []*load.Marker{{Kind: load.KindImmutable}}},
				{Name: "title", Info: typeInfo(field.TypeString)},
			},
		}
		src, rep := render(t, cls)

		assert.NotContains(t, src, `sku: "X"`)
		diags := rep.Diagnostics()
		require.Len(t, diags, 1)
		assert.Equal(t, gen.SeverityWarning, diags[0].Severity)
		assert.Contains(t, diags[0].Message, `default on field "sku" is never applied`)
	})
}

func TestSynthesizeInterface(t *testing.T) {
	cls := &load.Class{
		Name:     "Notifier",
		Kind:     load.KindInterface,
		Patterns: []string{"builder"},
		Methods: []*load.Method{
			{
				Name:    "Notify",
				Params:  []*load.Param{{Name: "msg", Info: typeInfo(field.TypeString)}},
				Returns: identInfo("error"),
				Markers: []*load.Marker{{Kind: load.KindInclude, Code: "return nil"}},
			},
		},
	}
	src, rep := render(t, cls)
	assert.False(t, rep.HasErrors())

	// Interface companions carry no state and build the zero value.
	assert.Contains(t, src, "type NotifierBuilder struct{}")
	assert.Contains(t, src, "func (nb *NotifierBuilder) Build() Notifier {")
	assert.Contains(t, src, "var notifier Notifier")
	assert.Contains(t, src, "return notifier")
	assert.Contains(t, src, "func (nb *NotifierBuilder) Notify(msg string) error {")
}

func TestSynthesizeCollisions(t *testing.T) {
	t.Run("parameter shadowing the receiver", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Fields:   []*load.Field{{Name: "ib", Info: typeInfo(field.TypeString)}},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, "func (ib *ItemBuilder) Ib(_ib string) *ItemBuilder {")
		assert.Contains(t, src, "ib.ib = _ib")
	})

	t.Run("build local shadowing the receiver", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Ib",
			Patterns: []string{"builder"},
			Fields:   []*load.Field{{Name: "value", Info: typeInfo(field.TypeInt)}},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, "_ib := &Ib{}")
		assert.Contains(t, src, "_ib.value = ib.value")
		assert.Contains(t, src, "return _ib")
	})

	t.Run("singularized keyword parameters are prefixed", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Span",
			Patterns: []string{"builder"},
			Fields:   []*load.Field{{Name: "ranges", Info: identInfo("[]int")}},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, "func (sb *SpanBuilder) AddRanges(_range ...int) *SpanBuilder {")
		assert.Contains(t, src, "sb.ranges = append(sb.ranges, _range...)")
	})

	t.Run("exported field names are unexported in state", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Span",
			Patterns: []string{"builder"},
			Fields:   []*load.Field{{Name: "Limit", Info: typeInfo(field.TypeInt)}},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, "_Limit int")
		assert.Contains(t, src, "func (sb *SpanBuilder) Limit(_Limit int) *SpanBuilder {")
		assert.Contains(t, src, "sb._Limit = _Limit")
	})

	t.Run("unrecognized name format warns", func(t *testing.T) {
		cls := &load.Class{
			Name:     "ITEM",
			Patterns: []string{"builder"},
			Fields:   []*load.Field{{Name: "value", Info: typeInfo(field.TypeInt)}},
		}
		src, rep := render(t, cls)

		warned := false
		for _, d := range rep.Diagnostics() {
			if strings.Contains(d.Message, `unknown name case format for "ITEM"`) {
				warned = true
			}
		}
		assert.True(t, warned)
		assert.Contains(t, src, "iTEM := &ITEM{}")
	})
}

func TestSynthesizeMethodComments(t *testing.T) {
	t.Run("declared comment wins", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Methods: []*load.Method{
				{
					Name:    "touch",
					Comment: "touch refreshes the builder timestamp.",
					Markers: []*load.Marker{{Kind: load.KindInclude, Code: "return"}},
				},
			},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, "// touch refreshes the builder timestamp.")
		assert.NotContains(t, src, "is copied from")
	})

	t.Run("empty body renders an empty block", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Methods: []*load.Method{
				{Name: "noop", Markers: []*load.Marker{{Kind: load.KindInclude}}},
			},
		}
		src, _ := render(t, cls)
		assert.Contains(t, src, "func (ib *ItemBuilder) noop() {")
	})
}

func TestSynthesizeGuards(t *testing.T) {
	rep := gen.NewReporter(nil)
	_, err := New().Synthesize(nil, nil, rep)
	require.Error(t, err)
	assert.True(t, gen.IsStructuralError(err))
}

func TestFileName(t *testing.T) {
	s := New()
	for _, tc := range []struct{ class, want string }{
		{"Item", "item_builder.go"},
		{"OrderLine", "order_line_builder.go"},
		{"HTTPServer", "http_server_builder.go"},
	} {
		typ, err := gen.NewType(&gen.Config{}, &load.Class{Name: tc.class})
		require.NoError(t, err)
		assert.Equal(t, tc.want, s.FileName(typ))
	}
}

func TestPattern(t *testing.T) {
	assert.Equal(t, pattern.Builder, New().Pattern())
}

func TestReplacementDoc(t *testing.T) {
	method := &gen.Method{Name: "fill"}
	for _, tc := range []struct {
		name     string
		replaces []string
		want     string
	}{
		{"no claims", nil, "fill is declared as a replacement."},
		{"one claim", []string{"amount"}, "fill replaces the generated setter for amount."},
		{"many claims", []string{"amount", "total"}, "fill replaces the generated setters for amount, total."},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := &gen.Replacement{Method: method, Replaces: tc.replaces}
			assert.Equal(t, tc.want, replacementDoc(r))
		})
	}
}
