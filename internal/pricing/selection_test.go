package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

func TestSelectionCounts(t *testing.T) {
	sel := NewSelection()
	sel.Set(catalog.Key{Day: 3, Category: enums.CategoryM}, 2)
	sel.Set(catalog.Key{Day: 5, Category: enums.CategoryM}, 1)
	sel.Set(catalog.Key{Day: 1, Category: enums.CategoryF}, 1)

	assert.Equal(t, 2, sel.DistinctDays(enums.CategoryM))
	assert.Equal(t, 3, sel.TotalUnits(enums.CategoryM))
	assert.Equal(t, 1, sel.DistinctDays(enums.CategoryF))
	assert.Equal(t, []int{3, 5}, sel.Days(enums.CategoryM))
	assert.Equal(t, "{d1F:1,d3M:2,d5M:1}", sel.String())

	sel.Set(catalog.Key{Day: 3, Category: enums.CategoryM}, 0)
	assert.Equal(t, 1, sel.DistinctDays(enums.CategoryM))
	assert.Equal(t, 0, sel.Quantity(catalog.Key{Day: 3, Category: enums.CategoryM}))
}

func TestSelectionZeroValue(t *testing.T) {
	var sel Selection
	assert.True(t, sel.IsEmpty())
	assert.Zero(t, sel.DistinctDays(enums.CategoryF))

	sel.Set(catalog.Key{Day: 2, Category: enums.CategoryF}, 1)
	assert.False(t, sel.IsEmpty())
}

func TestSelectionSetPanicsOnMalformedInput(t *testing.T) {
	sel := NewSelection()
	assert.Panics(t, func() { sel.Set(catalog.Key{Day: 0, Category: enums.CategoryM}, 1) })
	assert.Panics(t, func() { sel.Set(catalog.Key{Day: 7, Category: enums.CategoryM}, 1) })
	assert.Panics(t, func() { sel.Set(catalog.Key{Day: 1, Category: "X"}, 1) })
	assert.Panics(t, func() { sel.Set(catalog.Key{Day: 1, Category: enums.CategoryM}, 3) })
	assert.Panics(t, func() { sel.Set(catalog.Key{Day: 1, Category: enums.CategoryM}, -1) })
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection([]Item{
		{Day: 3, Category: "m", Quantity: 2},
		{Day: 5, Category: " M ", Quantity: 1},
		{Day: 6, Category: "F", Quantity: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Quantity(catalog.Key{Day: 3, Category: enums.CategoryM}))
	assert.Equal(t, 2, sel.DistinctDays(enums.CategoryM))
	assert.Zero(t, sel.DistinctDays(enums.CategoryF))

	sel, err = ParseSelection(nil)
	require.NoError(t, err)
	assert.True(t, sel.IsEmpty())
}

func TestParseSelectionRejectsMalformedItems(t *testing.T) {
	cases := map[string][]Item{
		"day too low":      {{Day: 0, Category: "M", Quantity: 1}},
		"day too high":     {{Day: 7, Category: "M", Quantity: 1}},
		"unknown category": {{Day: 1, Category: "X", Quantity: 1}},
		"quantity three":   {{Day: 1, Category: "F", Quantity: 3}},
		"negative":         {{Day: 1, Category: "F", Quantity: -1}},
		"duplicate": {
			{Day: 2, Category: "F", Quantity: 1},
			{Day: 2, Category: "f", Quantity: 2},
		},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSelection(items)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			assert.NotEmpty(t, typed.Details())
		})
	}
}
