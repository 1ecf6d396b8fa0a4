package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPunch(t *testing.T) {
	before := testutil.ToFloat64(PunchTotal.WithLabelValues("punch_in", "pending"))

	RecordPunch("punch_in", "pending", 150)

	after := testutil.ToFloat64(PunchTotal.WithLabelValues("punch_in", "pending"))
	assert.Equal(t, before+1, after)
}

func TestRecordReview(t *testing.T) {
	before := testutil.ToFloat64(ReviewTotal.WithLabelValues("punch_out", "rejected"))

	RecordReview("punch_out", "rejected")

	after := testutil.ToFloat64(ReviewTotal.WithLabelValues("punch_out", "rejected"))
	assert.Equal(t, before+1, after)
}

func TestNewStreamGauge(t *testing.T) {
	open := 3
	gauge := NewStreamGauge(func() int { return open })
	assert.Equal(t, 3.0, testutil.ToFloat64(gauge))

	open = 0
	assert.Equal(t, 0.0, testutil.ToFloat64(gauge))
}
