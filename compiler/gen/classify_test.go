package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/patterngen/compiler/load"
	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
)

func classify(t *testing.T, cls *load.Class, p pattern.Pattern) (*MemberSets, *Reporter) {
	t.Helper()
	typ, err := NewType(testConfig(), cls)
	require.NoError(t, err)
	rep := NewReporter(nil)
	return Classify(typ, p, Ambiguity(typ), rep), rep
}

func fieldNames(fields []*Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestClassify(t *testing.T) {
	t.Run("item scenario", func(t *testing.T) {
		sets, rep := classify(t, itemClass(), pattern.Builder)
		assert.Empty(t, rep.Diagnostics())

		// name is ignored, providerName is claimed by the provider
		// replacement, amount is aliased without affecting resolution.
		assert.Equal(t, []string{"providerName", "amount", "isStocked"}, fieldNames(sets.Exposed))
		assert.Equal(t, []string{"amount", "isStocked"}, fieldNames(sets.SetterFields()))
		assert.Equal(t, []string{"providerName", "amount", "isStocked"}, fieldNames(sets.StateFields()))

		require.Len(t, sets.Replacements, 1)
		r := sets.Replacements[0]
		assert.Equal(t, "provider", r.Name)
		assert.Equal(t, []string{"providerName"}, r.Replaces)
		assert.Contains(t, r.Code, "providerName = p.Name()")

		assert.True(t, sets.Replaced("providerName"))
		assert.False(t, sets.Immutable("providerName"))
		assert.Empty(t, sets.Included)
	})

	t.Run("ignored fields leave every set", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Fields: []*load.Field{
				{Name: "name", Info: stringInfo(), Markers: []*load.Marker{
					{Kind: load.KindIgnore},
					{Kind: load.KindImmutable},
				}},
			},
		}
		sets, rep := classify(t, cls, pattern.Builder)
		assert.Empty(t, rep.Diagnostics())
		assert.Empty(t, sets.Exposed)
		assert.Empty(t, sets.StateFields())
		assert.Empty(t, sets.SetterFields())
		assert.False(t, sets.Immutable("name"))
	})

	t.Run("immutable fields", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Stock",
			Patterns: []string{"builder"},
			Fields: []*load.Field{
				{Name: "sku", Info: stringInfo(), Markers: []*load.Marker{{Kind: load.KindImmutable}}},
				{Name: "level", Info: intInfo(), Markers: []*load.Marker{{Kind: load.KindImmutable}}},
				{Name: "note", Info: stringInfo()},
			},
			Methods: []*load.Method{
				{Name: "withLevel", Markers: []*load.Marker{{
					Kind:     load.KindReplace,
					Code:     "sb.level = 1\nreturn sb",
					Replaces: []string{"level"},
				}}},
			},
		}
		sets, rep := classify(t, cls, pattern.Builder)
		assert.Empty(t, rep.Diagnostics())

		// sku is immutable and unclaimed: exposed but carried nowhere.
		// level is immutable but replaced: it keeps its state slot so
		// the replacement body has somewhere to write.
		assert.Equal(t, []string{"sku", "level", "note"}, fieldNames(sets.Exposed))
		assert.Equal(t, []string{"note"}, fieldNames(sets.SetterFields()))
		assert.Equal(t, []string{"level", "note"}, fieldNames(sets.StateFields()))
		assert.True(t, sets.Immutable("sku"))
		assert.True(t, sets.Immutable("level"))
		assert.True(t, sets.Replaced("level"))
	})

	t.Run("include and replace on one method", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Fields:   []*load.Field{{Name: "amount", Info: intInfo()}},
			Methods: []*load.Method{
				{Name: "amountTwice", Markers: []*load.Marker{
					{Kind: load.KindInclude, Code: "return 2"},
					{Kind: load.KindReplace, Code: "return ib", Replaces: []string{"amount"}},
				}},
			},
		}
		sets, rep := classify(t, cls, pattern.Builder)

		diags := rep.Diagnostics()
		require.Len(t, diags, 1)
		assert.Equal(t, SeverityWarning, diags[0].Severity)
		assert.Contains(t, diags[0].Message, "the replacement wins")

		assert.Empty(t, sets.Included)
		require.Len(t, sets.Replacements, 1)
		assert.Equal(t, []string{"amount"}, sets.Replacements[0].Replaces)
	})

	t.Run("repeated markers keep the last", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Methods: []*load.Method{
				{Name: "reset", Markers: []*load.Marker{
					{Kind: load.KindInclude, Code: "return 1"},
					{Kind: load.KindInclude, Code: "return 2"},
				}},
			},
		}
		sets, rep := classify(t, cls, pattern.Builder)
		assert.Empty(t, rep.Diagnostics())
		require.Len(t, sets.Included, 1)
		assert.Equal(t, "return 2", sets.Included[0].Code)
	})

	t.Run("claims against ignored and unknown fields", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Fields: []*load.Field{
				{Name: "name", Info: stringInfo(), Markers: []*load.Marker{{Kind: load.KindIgnore}}},
				{Name: "amount", Info: intInfo()},
			},
			Methods: []*load.Method{
				{Name: "provider", Markers: []*load.Marker{{
					Kind:     load.KindReplace,
					Code:     "return ib",
					Replaces: []string{"name", "amount", "amount", "ghost"},
				}}},
			},
		}
		sets, rep := classify(t, cls, pattern.Builder)

		diags := rep.Sorted()
		require.Len(t, diags, 2)
		assert.Contains(t, diags[0].Message, `replace marker claims ignored field "name"`)
		assert.Contains(t, diags[1].Message, `replace marker claims unknown field "ghost"`)
		for _, d := range diags {
			assert.Equal(t, SeverityWarning, d.Severity)
		}

		// The duplicate claim is deduplicated, the bad claims dropped.
		require.Len(t, sets.Replacements, 1)
		assert.Equal(t, []string{"amount"}, sets.Replacements[0].Replaces)
		assert.True(t, sets.Replaced("amount"))
		assert.False(t, sets.Replaced("name"))
	})

	t.Run("replacement with no resolved claims still emits", func(t *testing.T) {
		cls := &load.Class{
			Name:     "Item",
			Patterns: []string{"builder"},
			Methods: []*load.Method{
				{Name: "provider", Markers: []*load.Marker{{
					Kind:     load.KindReplace,
					Code:     "return ib",
					Replaces: []string{"ghost"},
				}}},
			},
		}
		sets, rep := classify(t, cls, pattern.Builder)
		assert.Equal(t, 1, rep.Count(SeverityWarning))
		require.Len(t, sets.Replacements, 1)
		assert.Empty(t, sets.Replacements[0].Replaces)
	})
}

func TestClassifyAmbiguous(t *testing.T) {
	cls := &load.Class{
		Name:     "Item",
		Patterns: []string{"builder", "prototype"},
		Fields: []*load.Field{
			// Unscoped under ambiguity: applies to neither pattern.
			{Name: "name", Info: stringInfo(), Markers: []*load.Marker{{Kind: load.KindIgnore}}},
			{Name: "sku", Info: stringInfo(), Markers: []*load.Marker{{Kind: load.KindImmutable, Affects: []string{"prototype"}}}},
			{Name: "amount", Info: intInfo(), Markers: []*load.Marker{{Kind: load.KindIgnore, Affects: []string{"builder"}}}},
		},
	}

	t.Run("builder resolution", func(t *testing.T) {
		sets, rep := classify(t, cls, pattern.Builder)
		assert.Empty(t, rep.Diagnostics())
		assert.Equal(t, []string{"name", "sku"}, fieldNames(sets.Exposed))
		assert.Equal(t, []string{"name", "sku"}, fieldNames(sets.SetterFields()))
		assert.False(t, sets.Immutable("sku"))
	})

	t.Run("prototype resolution", func(t *testing.T) {
		sets, rep := classify(t, cls, prototype)
		assert.Empty(t, rep.Diagnostics())
		assert.Equal(t, []string{"name", "sku", "amount"}, fieldNames(sets.Exposed))
		assert.Equal(t, []string{"name", "amount"}, fieldNames(sets.SetterFields()))
		assert.True(t, sets.Immutable("sku"))
	})
}

func TestClassifyEmptyClaims(t *testing.T) {
	// An empty claims list cannot come through the loader, which rejects
	// it at decode time. A hand-built marker exercises the guard.
	typ := &Type{
		Config: testConfig(),
		Name:   "Item",
		Methods: []*Method{
			{Name: "provider", Markers: []schema.Marker{schema.Replace{Code: "return nil"}}},
		},
	}
	rep := NewReporter(nil)
	sets := Classify(typ, pattern.Builder, false, rep)

	assert.True(t, rep.HasErrors())
	diags := rep.Diagnostics()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "must claim at least one field")
	require.Len(t, sets.Replacements, 1)
	assert.Empty(t, sets.Replacements[0].Replaces)
}
