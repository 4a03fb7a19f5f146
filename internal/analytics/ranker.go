package analytics

import (
	"sort"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
)

// KeyFunc extracts the grouping key of an event; "" means the event is not ranked.
type KeyFunc func(e entity.Event) string

type RankedEntry struct {
	Key    string
	Views  int
	Clicks int
}

func (r RankedEntry) CTR() float64 {
	return utils.Percentage(r.Clicks, r.Views)
}

// EntityKey keys events by entity_id when they reference an entity of the given type.
func EntityKey(entityType string) KeyFunc {
	return func(e entity.Event) string {
		id, _ := e.Entity(entityType)
		return id
	}
}

func PageKey(e entity.Event) string {
	return e.PageURL
}

// CountByKey groups classified events by key.
func CountByKey(events []entity.Event, key KeyFunc, classify Classifier) map[string]RankedEntry {
	counts := make(map[string]RankedEntry)
	for _, e := range events {
		kind := classify(e)
		if kind == KindNone {
			continue
		}
		k := key(e)
		if k == "" {
			continue
		}

		entry := counts[k]
		entry.Key = k
		if kind == KindView {
			entry.Views++
		} else {
			entry.Clicks++
		}
		counts[k] = entry
	}
	return counts
}

// Rank orders entries by views desc, clicks desc, key asc and keeps at most n.
func Rank(counts map[string]RankedEntry, n int) []RankedEntry {
	if n <= 0 {
		return []RankedEntry{}
	}

	entries := make([]RankedEntry, 0, len(counts))
	for _, entry := range counts {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		if a.Clicks != b.Clicks {
			return a.Clicks > b.Clicks
		}
		return a.Key < b.Key
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func TopN(events []entity.Event, n int, key KeyFunc, classify Classifier) []RankedEntry {
	return Rank(CountByKey(events, key, classify), n)
}
