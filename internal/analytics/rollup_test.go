package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupByCategory(t *testing.T) {
	perEntity := map[string]RankedEntry{
		"p1": {Key: "p1", Views: 10, Clicks: 2},
		"p2": {Key: "p2", Views: 5, Clicks: 1},
		"p3": {Key: "p3", Views: 7},
		"p4": {Key: "p4", Views: 100},
	}
	categories := map[string]string{
		"p1": "brakes",
		"p2": "brakes",
		"p3": "filters",
	}

	rolled := RollupByCategory(perEntity, categories, nil)

	require.Len(t, rolled, 2)
	assert.Equal(t, CategoryMetrics{CategoryID: "brakes", Views: 15, Clicks: 3, Entities: 2}, rolled[0])
	assert.Equal(t, CategoryMetrics{CategoryID: "filters", Views: 7, Entities: 1}, rolled[1])

	resolved, rolledUp := 0, 0
	for id, e := range perEntity {
		if _, ok := categories[id]; ok {
			resolved += e.Views
		}
	}
	for _, c := range rolled {
		rolledUp += c.Views
	}
	assert.Equal(t, resolved, rolledUp)
}

func TestRollupByCategory_CustomOrder(t *testing.T) {
	perEntity := map[string]RankedEntry{
		"p1": {Key: "p1", Views: 10},
		"p2": {Key: "p2", Views: 1, Clicks: 5},
	}
	categories := map[string]string{"p1": "a", "p2": "b"}

	rolled := RollupByCategory(perEntity, categories, func(a, b CategoryMetrics) bool {
		return a.Clicks > b.Clicks
	})

	require.Len(t, rolled, 2)
	assert.Equal(t, "b", rolled[0].CategoryID)
}

func TestRollupByCategory_TieOrder(t *testing.T) {
	perEntity := map[string]RankedEntry{
		"p1": {Key: "p1", Views: 3},
		"p2": {Key: "p2", Views: 3},
	}
	categories := map[string]string{"p1": "z", "p2": "m"}

	rolled := RollupByCategory(perEntity, categories, nil)

	assert.Equal(t, "m", rolled[0].CategoryID)
	assert.Equal(t, "z", rolled[1].CategoryID)
}
