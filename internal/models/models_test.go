package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStringListDecodesLegacyString(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"items": "a1, b2,,c3"})
	require.NoError(t, err)

	var set MealSet
	require.NoError(t, bson.Unmarshal(raw, &set))
	assert.Equal(t, StringList{"a1", "b2", "c3"}, set.Items)
}

func TestStringListDecodesArray(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"items": []string{"x", "y"}})
	require.NoError(t, err)

	var set MealSet
	require.NoError(t, bson.Unmarshal(raw, &set))
	assert.Equal(t, StringList{"x", "y"}, set.Items)
}

func TestStringListScansPostgresArray(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan([]byte(`{one,two}`)))
	assert.Equal(t, StringList{"one", "two"}, list)

	value, err := StringList{"one", "two"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"one","two"}`, value)
}

func TestOrderLinesRoundTripsJSONColumn(t *testing.T) {
	lines := OrderLines{{ItemID: "i1", Name: "Pancit", Price: 250, Quantity: 2}}
	value, err := lines.Value()
	require.NoError(t, err)

	var scanned OrderLines
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, lines, scanned)

	var empty OrderLines
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestValidItemCategory(t *testing.T) {
	for _, c := range []string{"snack", "main", "side", "beverage"} {
		assert.True(t, ValidItemCategory(c), c)
	}
	assert.False(t, ValidItemCategory("dessert"))
	assert.False(t, ValidItemCategory("Main"))
}
