package analytics

import (
	"fmt"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
)

const (
	DefaultDays = 30
	MaxDays     = 90
)

// maxSpan bounds an explicit range before its days are counted; the slack covers
// DST days and partial first and last days.
const maxSpan = (MaxDays + 2) * 24 * time.Hour

var periodDays = map[string]int{
	"last_7_days":  7,
	"last_30_days": 30,
	"last_90_days": 90,
}

// Range is a half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Empty() bool {
	return !r.End.After(r.Start)
}

// Days is the number of local calendar days the range touches, the same count
// Buckets produces at day granularity. DST days count once whatever their length.
func (r Range) Days(loc *time.Location) int {
	if r.Empty() {
		return 0
	}
	if loc == nil {
		loc = time.UTC
	}

	days := 0
	for cursor := utils.StartOfDay(r.Start, loc); cursor.Before(r.End); days++ {
		local := cursor.In(loc)
		cursor = time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	}
	return days
}

func (r Range) String() string {
	return utils.FormatPeriod(r.Start, r.End)
}

// ResolveRange turns a range query into a concrete interval.
// Explicit startDate/endDate win and may span at most MaxDays local days; then a period
// token; then days (default 30, clamped to 1..90).
// Day-count ranges end at the next local midnight so today is included.
func ResolveRange(q entity.RangeQuery, now time.Time, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}

	if q.StartDate != "" && q.EndDate != "" {
		start, err := parseDate(q.StartDate, loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid startDate: %v", entity.ErrValidation, err)
		}
		end, err := parseDate(q.EndDate, loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid endDate: %v", entity.ErrValidation, err)
		}
		r := Range{Start: start, End: end}
		if r.End.Sub(r.Start) > maxSpan || r.Days(loc) > MaxDays {
			return Range{}, fmt.Errorf("%w: range %s exceeds %d days", entity.ErrValidation, r, MaxDays)
		}
		return r, nil
	}

	days := DefaultDays
	if d, ok := periodDays[q.Period]; ok {
		days = d
	} else if q.Days != nil {
		days = clampDays(*q.Days)
	}

	end := utils.StartOfDay(now, loc).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)
	return Range{Start: start, End: end}, nil
}

func clampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
