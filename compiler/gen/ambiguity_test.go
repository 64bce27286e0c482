package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/patterngen/compiler/load"
	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
	"github.com/syssam/patterngen/schema/field"
)

// prototype is a second pattern registered for ambiguity tests. The
// registry is idempotent, so the handle is stable across test files.
var prototype = pattern.Register("prototype", "test double for multi-pattern classes")

func TestAmbiguity(t *testing.T) {
	t.Run("single pattern", func(t *testing.T) {
		typ, err := NewType(testConfig(), itemClass())
		require.NoError(t, err)
		assert.False(t, Ambiguity(typ))
	})

	t.Run("multiple patterns", func(t *testing.T) {
		cls := itemClass()
		cls.Patterns = []string{"builder", "prototype"}
		typ, err := NewType(testConfig(), cls)
		require.NoError(t, err)
		assert.True(t, Ambiguity(typ))
	})

	t.Run("no patterns", func(t *testing.T) {
		cls := itemClass()
		cls.Patterns = nil
		typ, err := NewType(testConfig(), cls)
		require.NoError(t, err)
		assert.False(t, Ambiguity(typ))
	})
}

func TestApplies(t *testing.T) {
	t.Run("empty affects follows ambiguity", func(t *testing.T) {
		m := schema.NewIgnore()
		assert.True(t, applies(m, pattern.Builder, false))
		assert.False(t, applies(m, pattern.Builder, true))
	})

	t.Run("explicit affects wins over ambiguity", func(t *testing.T) {
		m := schema.NewIgnore(pattern.Builder)
		assert.True(t, applies(m, pattern.Builder, false))
		assert.True(t, applies(m, pattern.Builder, true))
		assert.False(t, applies(m, prototype, false))
		assert.False(t, applies(m, prototype, true))
	})

	t.Run("multiple affected patterns", func(t *testing.T) {
		m := schema.NewImmutable(pattern.Builder, prototype)
		assert.True(t, applies(m, pattern.Builder, true))
		assert.True(t, applies(m, prototype, true))
	})
}

func TestOffending(t *testing.T) {
	rep, err := schema.NewReplace("return nil", []string{"amount"})
	require.NoError(t, err)

	assert.True(t, offending(schema.NewIgnore()))
	assert.True(t, offending(schema.NewImmutable()))
	assert.True(t, offending(schema.NewInclude("return 0")))
	assert.True(t, offending(rep))
	assert.False(t, offending(schema.NewIgnore(pattern.Builder)))
	assert.False(t, offending(schema.NewAliased("available")))
}

func TestMarkerKind(t *testing.T) {
	rep, err := schema.NewReplace("return nil", []string{"amount"})
	require.NoError(t, err)

	assert.Equal(t, "ignore", markerKind(schema.NewIgnore()))
	assert.Equal(t, "immutable", markerKind(schema.NewImmutable()))
	assert.Equal(t, "include", markerKind(schema.NewInclude("return 0")))
	assert.Equal(t, "replace", markerKind(rep))
	assert.Equal(t, "aliased", markerKind(schema.NewAliased("available")))
}

func TestValidateAffects(t *testing.T) {
	ambiguousClass := func() *load.Class {
		return &load.Class{
			Name:     "Item",
			Patterns: []string{"builder", "prototype"},
			Fields: []*load.Field{
				{Name: "name", Info: stringInfo(), Markers: []*load.Marker{{Kind: load.KindIgnore}}},
				{Name: "sku", Info: stringInfo(), Markers: []*load.Marker{{Kind: load.KindImmutable, Affects: []string{"builder"}}}},
				{Name: "amount", Info: intInfo(), Markers: []*load.Marker{{Kind: load.KindAliased, Alias: "available"}}},
			},
			Methods: []*load.Method{
				{Name: "reset", Markers: []*load.Marker{{Kind: load.KindInclude, Code: "return"}}},
			},
		}
	}

	t.Run("ambiguous markers are reported", func(t *testing.T) {
		typ, err := NewType(testConfig(), ambiguousClass())
		require.NoError(t, err)
		require.True(t, Ambiguity(typ))

		rep := NewReporter(nil)
		ValidateAffects(typ, true, rep)

		diags := rep.Sorted()
		require.Len(t, diags, 2)
		assert.True(t, rep.HasErrors())

		// name.Ignore and reset.Include carry no affects list; the
		// aliased marker and the scoped immutable marker are fine.
		assert.Equal(t, "name", diags[0].Element)
		assert.Contains(t, diags[0].Message, "ignore marker must name its affected patterns")
		assert.Equal(t, "reset", diags[1].Element)
		assert.Contains(t, diags[1].Message, "include marker must name its affected patterns")

		for _, d := range diags {
			assert.Equal(t, SeverityError, d.Severity)
			assert.True(t, IsAmbiguityError(d.Err))
		}
	})

	t.Run("unambiguous classes are exempt", func(t *testing.T) {
		cls := ambiguousClass()
		cls.Patterns = []string{"builder"}
		typ, err := NewType(testConfig(), cls)
		require.NoError(t, err)

		rep := NewReporter(nil)
		ValidateAffects(typ, Ambiguity(typ), rep)
		assert.Empty(t, rep.Diagnostics())
	})

	t.Run("fully scoped markers pass", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder", "prototype"},
			Fields: []*load.Field{
				{Name: "name", Info: stringInfo(), Markers: []*load.Marker{{Kind: load.KindIgnore, Affects: []string{"builder", "prototype"}}}},
			},
		}
		typ, err := NewType(testConfig(), cls)
		require.NoError(t, err)

		rep := NewReporter(nil)
		ValidateAffects(typ, true, rep)
		assert.Empty(t, rep.Diagnostics())
	})
}

func TestValidateAffectsFieldInfo(t *testing.T) {
	// Guards the wire form: affects lists survive the load round-trip
	// into decoded markers.
	cls := &load.Class{
		Name:     "Item",
		Patterns: []string{"builder", "prototype"},
		Fields: []*load.Field{
			{Name: "amount", Info: &field.TypeInfo{Type: field.TypeInt}, Markers: []*load.Marker{
				{Kind: load.KindImmutable, Affects: []string{"prototype"}},
			}},
		},
	}
	typ, err := NewType(testConfig(), cls)
	require.NoError(t, err)

	m := typ.Fields[0].Markers[0]
	assert.Equal(t, []pattern.Pattern{prototype}, m.Affected())
	assert.True(t, applies(m, prototype, true))
	assert.False(t, applies(m, pattern.Builder, true))
}
