package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordCycle("ok", 12)
	r.RecordCycle("error", 1)
	r.RecordCycle("ok", 3)
	r.RecordRetry("kline")
	r.RecordStage("accepted", 7)
	r.RecordSinkPublish("kafka", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cycles.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.retries.WithLabelValues("kline")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.stageSize.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sinkPublish.WithLabelValues("kafka", "error")))
	assert.Greater(t, testutil.ToFloat64(r.lastSuccess), 0.0)
}

func TestRecordersUseSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegisterer(prometheus.NewRegistry())
		NewWithRegisterer(prometheus.NewRegistry())
	})
}
