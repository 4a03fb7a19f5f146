package analytics

import "sort"

type CategoryMetrics struct {
	CategoryID string
	Views      int
	Clicks     int
	Entities   int
}

// RollupByCategory regroups per-entity counts under their category using one
// precomputed entity->category map. Entities without a category are dropped.
// A nil less uses views desc, clicks desc, category id asc.
func RollupByCategory(perEntity map[string]RankedEntry, entityToCategory map[string]string, less func(a, b CategoryMetrics) bool) []CategoryMetrics {
	grouped := make(map[string]*CategoryMetrics)
	for id, entry := range perEntity {
		categoryID, ok := entityToCategory[id]
		if !ok || categoryID == "" {
			continue
		}

		m, ok := grouped[categoryID]
		if !ok {
			m = &CategoryMetrics{CategoryID: categoryID}
			grouped[categoryID] = m
		}
		m.Views += entry.Views
		m.Clicks += entry.Clicks
		m.Entities++
	}

	result := make([]CategoryMetrics, 0, len(grouped))
	for _, m := range grouped {
		result = append(result, *m)
	}

	if less == nil {
		less = byViews
	}
	sort.Slice(result, func(i, j int) bool {
		return less(result[i], result[j])
	})

	return result
}

func byViews(a, b CategoryMetrics) bool {
	if a.Views != b.Views {
		return a.Views > b.Views
	}
	if a.Clicks != b.Clicks {
		return a.Clicks > b.Clicks
	}
	return a.CategoryID < b.CategoryID
}
