package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
)

func TestDeltaPct(t *testing.T) {
	tests := []struct {
		current, previous int
		want              string
	}{
		{0, 0, "0%"},
		{5, 0, "+100%"},
		{50, 100, "-50.0%"},
		{150, 100, "+50.0%"},
		{100, 100, "+0.0%"},
		{1, 3, "-66.7%"},
		{0, 7, "-100.0%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeltaPct(tt.current, tt.previous), "DeltaPct(%d, %d)", tt.current, tt.previous)
	}
}

func TestPreviousRange(t *testing.T) {
	r := Range{Start: day(2025, 1, 8), End: day(2025, 1, 15)}

	prev := PreviousRange(r)

	assert.Equal(t, day(2025, 1, 1), prev.Start)
	assert.Equal(t, day(2025, 1, 8), prev.End)
}

func TestCompare(t *testing.T) {
	current := Range{Start: day(2025, 1, 3), End: day(2025, 1, 5)}
	events := []entity.Event{
		pageView("s1", "/", day(2025, 1, 1).Add(time.Hour)),
		pageView("s2", "/", day(2025, 1, 2).Add(time.Hour)),
		pageView("s1", "/", day(2025, 1, 3).Add(time.Hour)),
		pageView("s2", "/", day(2025, 1, 3).Add(2*time.Hour)),
		pageView("s3", "/", day(2025, 1, 4).Add(time.Hour)),
		unitClick("s3", entity.EntityUnit, "u1", day(2025, 1, 4).Add(time.Hour)),
	}

	cmp := Compare(events, current, GranularityDay, time.UTC, TrafficClassifier)

	assert.Equal(t, 3, cmp.Current.Views)
	assert.Equal(t, 2, cmp.Previous.Views)
	assert.Len(t, cmp.Current.Buckets, 2)
	assert.Len(t, cmp.Previous.Buckets, 2)
	assert.Equal(t, "+50.0%", cmp.Changes.Views)
	assert.Equal(t, "+100%", cmp.Changes.Clicks)
	assert.Equal(t, "+50.0%", cmp.Changes.UniqueSessions)

	summary := cmp.Summary()
	assert.Equal(t, day(2025, 1, 1), summary.PreviousStart)
	assert.Equal(t, 2, summary.Previous.Views)
}

func TestCompare_EmptyRange(t *testing.T) {
	r := Range{Start: day(2025, 1, 3), End: day(2025, 1, 3)}

	cmp := Compare([]entity.Event{pageView("s", "/", day(2025, 1, 3))}, r, GranularityDay, time.UTC, TrafficClassifier)

	assert.Empty(t, cmp.Current.Buckets)
	assert.Equal(t, "0%", cmp.Changes.Views)
}
