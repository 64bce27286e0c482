package schema_test

import (
	"errors"
	"testing"

	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarkerAffects tests the affects sets carried by each marker kind.
func TestMarkerAffects(t *testing.T) {
	t.Run("empty_by_default", func(t *testing.T) {
		assert.Empty(t, schema.NewIgnore().Affected())
		assert.Empty(t, schema.NewImmutable().Affected())
		assert.Empty(t, schema.NewInclude("return b").Affected())
	})

	t.Run("explicit_targets", func(t *testing.T) {
		assert.Equal(t, []pattern.Pattern{pattern.Builder}, schema.NewIgnore(pattern.Builder).Affected())
		assert.Equal(t, []pattern.Pattern{pattern.Builder}, schema.NewImmutable(pattern.Builder).Affected())
		assert.Equal(t, []pattern.Pattern{pattern.Builder}, schema.NewInclude("return b", pattern.Builder).Affected())
	})

	t.Run("aliased_is_unscoped", func(t *testing.T) {
		assert.Empty(t, schema.NewAliased("available").Affected())
	})

	t.Run("implement_Marker", func(_ *testing.T) {
		var _ schema.Marker = schema.Ignore{}
		var _ schema.Marker = schema.Immutable{}
		var _ schema.Marker = schema.Include{}
		var _ schema.Marker = schema.Replace{}
		var _ schema.Marker = schema.Aliased{}
	})
}

// TestNewReplace tests replaced-field validation.
func TestNewReplace(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := schema.NewReplace("b.amount = deposited - withdrawn\nreturn b", []string{"amount"}, pattern.Builder)
		require.NoError(t, err)
		assert.Equal(t, []string{"amount"}, m.Replaces)
		assert.Equal(t, []pattern.Pattern{pattern.Builder}, m.Affected())
	})

	t.Run("empty_replaces", func(t *testing.T) {
		_, err := schema.NewReplace("return b", nil)
		require.ErrorIs(t, err, schema.ErrEmptyReplaces)
		_, err = schema.NewReplace("return b", []string{})
		require.ErrorIs(t, err, schema.ErrEmptyReplaces)
	})
}

// TestMarkerError tests the MarkerError wrapper.
func TestMarkerError(t *testing.T) {
	err := schema.NewMarkerError("transitions", "replace", schema.ErrEmptyReplaces)
	require.True(t, schema.IsMarkerError(err))
	require.ErrorIs(t, err, schema.ErrEmptyReplaces)
	assert.Contains(t, err.Error(), `invalid replace marker on "transitions"`)

	assert.False(t, schema.IsMarkerError(nil))
	assert.False(t, schema.IsMarkerError(errors.New("other")))
}
