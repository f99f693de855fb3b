package otc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

func TestResolveOption(t *testing.T) {
	t.Parallel()

	fieldMap := otc.DefaultFieldMap()

	t.Run("exact label", func(t *testing.T) {
		t.Parallel()

		id, err := fieldMap.ResolveOption(otc.FieldClientType, "Buyer")
		require.NoError(t, err)
		assert.Equal(t, 797212, id)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			field string
			label string
			want  int
		}{
			{otc.FieldClientType, "buyer", 797212},
			{otc.FieldClientType, "SELLER", 797213},
			{otc.FieldClientType, "dUaL", 797214},
			{otc.FieldStatus, "active", 797206},
			{otc.FieldStatus, "under contract", 797207},
			{otc.FieldStatus, "CLOSED", 797209},
		}

		for _, tt := range tests {
			id, err := fieldMap.ResolveOption(tt.field, tt.label)
			require.NoError(t, err, "%s %q", tt.field, tt.label)
			assert.Equal(t, tt.want, id)
		}
	})

	t.Run("unknown label fails closed naming valid choices", func(t *testing.T) {
		t.Parallel()

		_, err := fieldMap.ResolveOption(otc.FieldStatus, "Sold")
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
		assert.Contains(t, err.Error(), `invalid status "Sold"`)
		assert.Contains(t, err.Error(), "Active")
		assert.Contains(t, err.Error(), "Under Contract")
	})

	t.Run("field without option table", func(t *testing.T) {
		t.Parallel()

		_, err := fieldMap.ResolveOption(otc.FieldTitle, "anything")
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
	})
}

func TestTriple(t *testing.T) {
	t.Parallel()

	fieldMap := otc.DefaultFieldMap()

	triple, err := fieldMap.Triple(otc.FieldTitle, "123 Main Street")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"id":    926565,
		"key":   "contract_title",
		"value": "123 Main Street",
	}, triple)

	_, err = fieldMap.Triple("bedrooms", 3)
	require.Error(t, err)
	assert.True(t, otc.IsValidation(err))
}

func TestDefaultFieldMapReturnsFreshCopy(t *testing.T) {
	t.Parallel()

	first := otc.DefaultFieldMap()
	delete(first, otc.FieldTitle)

	second := otc.DefaultFieldMap()
	_, ok := second[otc.FieldTitle]
	assert.True(t, ok)
}

func TestOptionLabelsSorted(t *testing.T) {
	t.Parallel()

	labels := otc.DefaultFieldMap().OptionLabels(otc.FieldStatus)
	assert.Equal(t, []string{
		"Active", "Closed", "Pending", "Pre-MLS",
		"Terminated", "Under Contract", "Withdrawn",
	}, labels)
}
