package analytics

import (
	"time"

	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
)

type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityHour Granularity = "hour"
)

// ParseGranularity maps a query value to a Granularity; anything unknown is day.
func ParseGranularity(s string) Granularity {
	if Granularity(s) == GranularityHour {
		return GranularityHour
	}
	return GranularityDay
}

// Bucket is a half-open interval [Start, End).
type Bucket struct {
	Start time.Time
	End   time.Time
	Date  string
	Day   string
	Label string
}

func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Buckets splits [start, end) into contiguous day or hour intervals in loc.
// The first and last buckets are clipped to the range, so the union is exactly [start, end).
func Buckets(start, end time.Time, g Granularity, loc *time.Location) []Bucket {
	if !end.After(start) {
		return []Bucket{}
	}
	if loc == nil {
		loc = time.UTC
	}

	var (
		cursor  time.Time
		advance func(time.Time) time.Time
	)

	switch g {
	case GranularityHour:
		cursor = utils.StartOfHour(start, loc)
		advance = func(t time.Time) time.Time { return t.Add(time.Hour) }
	default:
		cursor = utils.StartOfDay(start, loc)
		advance = func(t time.Time) time.Time {
			local := t.In(loc)
			return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
		}
	}

	buckets := make([]Bucket, 0, estimateBuckets(start, end, g))
	for cursor.Before(end) {
		next := advance(cursor)

		b := Bucket{Start: cursor, End: next}
		if b.Start.Before(start) {
			b.Start = start
		}
		if b.End.After(end) {
			b.End = end
		}
		labelBucket(&b, cursor, g, loc)

		buckets = append(buckets, b)
		cursor = next
	}

	return buckets
}

func labelBucket(b *Bucket, boundary time.Time, g Granularity, loc *time.Location) {
	local := boundary.In(loc)
	b.Date = local.Format("2006-01-02")
	b.Day = local.Format("02/01")

	if g == GranularityHour {
		b.Date = local.Format("2006-01-02T15:00")
		b.Label = utils.HourLabel(local)
		return
	}
	b.Label = utils.DayLabel(local)
}

func estimateBuckets(start, end time.Time, g Granularity) int {
	unit := 24 * time.Hour
	if g == GranularityHour {
		unit = time.Hour
	}
	return int(end.Sub(start)/unit) + 2
}
