package analytics

import (
	"fmt"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
)

type Comparison struct {
	Current       AggregateResult
	Previous      AggregateResult
	PreviousRange Range
	Changes       entity.Changes
}

// PreviousRange is the window of equal length ending where r starts.
func PreviousRange(r Range) Range {
	d := r.End.Sub(r.Start)
	return Range{Start: r.Start.Add(-d), End: r.Start}
}

// Compare aggregates the current range and the preceding one from a single snapshot.
// The two halves share nothing and are computed concurrently.
func Compare(events []entity.Event, current Range, g Granularity, loc *time.Location, classify Classifier) Comparison {
	prev := PreviousRange(current)

	var previous AggregateResult
	done := make(chan struct{})
	go func() {
		defer close(done)
		previous = Aggregate(events, Buckets(prev.Start, prev.End, g, loc), classify)
	}()

	cur := Aggregate(events, Buckets(current.Start, current.End, g, loc), classify)
	<-done

	return Comparison{
		Current:       cur,
		Previous:      previous,
		PreviousRange: prev,
		Changes: entity.Changes{
			Views:          DeltaPct(cur.Views, previous.Views),
			Clicks:         DeltaPct(cur.Clicks, previous.Clicks),
			UniqueSessions: DeltaPct(cur.UniqueSessions, previous.UniqueSessions),
		},
	}
}

func (c Comparison) Summary() entity.ComparisonSummary {
	return entity.ComparisonSummary{
		PreviousStart: c.PreviousRange.Start,
		PreviousEnd:   c.PreviousRange.End,
		Previous:      c.Previous.Totals(),
		Changes:       c.Changes,
	}
}

// DeltaPct formats the change from previous to current as a signed percentage.
func DeltaPct(current, previous int) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}

	change := utils.RoundToOneDecimal(float64(current-previous) / float64(previous) * 100)
	if change == 0 {
		// normalizes -0 from tiny negative changes
		change = 0
	}
	if change >= 0 {
		return fmt.Sprintf("+%.1f%%", change)
	}
	return fmt.Sprintf("%.1f%%", change)
}
