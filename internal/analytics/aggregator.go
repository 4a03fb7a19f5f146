package analytics

import (
	"sort"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
)

type BucketMetrics struct {
	Bucket         Bucket
	Views          int
	Clicks         int
	UniqueSessions int
	CTR            float64
}

type AggregateResult struct {
	Buckets        []BucketMetrics
	Views          int
	Clicks         int
	UniqueSessions int
	CTR            float64
}

// Aggregate assigns every classified event to the bucket containing its created_at.
// Buckets must be sorted and contiguous, as returned by Buckets. Events outside the
// bucket span are ignored. Unique sessions are counted on view events only.
func Aggregate(events []entity.Event, buckets []Bucket, classify Classifier) AggregateResult {
	result := AggregateResult{Buckets: make([]BucketMetrics, len(buckets))}
	for i, b := range buckets {
		result.Buckets[i].Bucket = b
	}
	if len(buckets) == 0 {
		return result
	}

	perBucket := make([]map[string]struct{}, len(buckets))
	allSessions := make(map[string]struct{})

	for _, e := range events {
		kind := classify(e)
		if kind == KindNone {
			continue
		}

		idx := findBucket(buckets, e.CreatedAt)
		if idx < 0 {
			continue
		}

		m := &result.Buckets[idx]
		switch kind {
		case KindView:
			m.Views++
			result.Views++
			if e.SessionID != "" {
				if perBucket[idx] == nil {
					perBucket[idx] = make(map[string]struct{})
				}
				perBucket[idx][e.SessionID] = struct{}{}
				allSessions[e.SessionID] = struct{}{}
			}
		case KindClick:
			m.Clicks++
			result.Clicks++
		}
	}

	for i := range result.Buckets {
		m := &result.Buckets[i]
		m.UniqueSessions = len(perBucket[i])
		m.CTR = utils.Percentage(m.Clicks, m.Views)
	}
	result.UniqueSessions = len(allSessions)
	result.CTR = utils.Percentage(result.Clicks, result.Views)

	return result
}

func findBucket(buckets []Bucket, t time.Time) int {
	i := sort.Search(len(buckets), func(i int) bool {
		return buckets[i].End.After(t)
	})
	if i == len(buckets) || !buckets[i].Contains(t) {
		return -1
	}
	return i
}

// Series converts the per-bucket metrics into response points.
func (r AggregateResult) Series() []entity.SeriesPoint {
	points := make([]entity.SeriesPoint, 0, len(r.Buckets))
	for _, m := range r.Buckets {
		points = append(points, entity.SeriesPoint{
			Date:           m.Bucket.Date,
			Day:            m.Bucket.Day,
			Label:          m.Bucket.Label,
			Views:          m.Views,
			Clicks:         m.Clicks,
			UniqueSessions: m.UniqueSessions,
			CTR:            m.CTR,
		})
	}
	return points
}

func (r AggregateResult) Totals() entity.Totals {
	return entity.Totals{
		Views:          r.Views,
		Clicks:         r.Clicks,
		UniqueSessions: r.UniqueSessions,
		CTR:            r.CTR,
	}
}
