package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordIngest(t *testing.T) {
	before := testutil.ToFloat64(EventsIngested.WithLabelValues("page_view", ResultAccepted))

	RecordIngest("page_view", ResultAccepted)

	after := testutil.ToFloat64(EventsIngested.WithLabelValues("page_view", ResultAccepted))
	assert.Equal(t, before+1, after)
}

func TestRecordIngest_UnknownType(t *testing.T) {
	before := testutil.ToFloat64(EventsIngested.WithLabelValues("unknown", ResultInvalid))

	RecordIngest("", ResultInvalid)

	assert.Equal(t, before+1, testutil.ToFloat64(EventsIngested.WithLabelValues("unknown", ResultInvalid)))
}

func TestRecordAggregation_Error(t *testing.T) {
	before := testutil.ToFloat64(AggregationErrors.WithLabelValues("dashboard"))

	RecordAggregation("dashboard", 0, time.Millisecond, errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(AggregationErrors.WithLabelValues("dashboard")))
}

func TestRecordRetention(t *testing.T) {
	before := testutil.ToFloat64(RetentionDeleted)

	RecordRetention(5)

	assert.Equal(t, before+5, testutil.ToFloat64(RetentionDeleted))
	assert.Greater(t, testutil.ToFloat64(RetentionLastRun), 0.0)
}
