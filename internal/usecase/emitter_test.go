package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
	"TrendScan/pkg/logger"
	"TrendScan/pkg/metrics"
)

func testRecord() *models.CycleRecord {
	return &models.CycleRecord{
		ID:            "c-1",
		Timestamp:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Timeframes:    []string{"1d", "1w"},
		SortTimeframe: "1d",
		Bull:          []models.Candidate{{Symbol: "BTCUSDT", Trend: models.TrendBull, RSI: map[string]float64{"1d": 60, "1w": 55}}},
	}
}

func TestEmitDeliversEverywhere(t *testing.T) {
	reports := &fakeReports{}
	history := &fakeHistory{}
	notifier := &fakeNotifier{}
	sink := &fakeSink{name: "kafka"}

	e := NewEmitter(reports, history, notifier, []domrepo.CycleSink{sink}, time.UTC, logger.Nop(), metrics.Nop{})
	require.NoError(t, e.Emit(context.Background(), testRecord()))

	assert.Contains(t, reports.text, "01. BTC/USDT")
	require.Len(t, history.records, 1)
	assert.Equal(t, "c-1", history.records[0].ID)
	assert.Equal(t, "last_report.txt", notifier.filename)
	assert.Equal(t, reports.text, string(notifier.content))
	assert.Equal(t, "BYBIT MACD Scanner — report (1d & 1w)", notifier.caption)
	assert.Len(t, sink.got, 1)
}

func TestEmitToleratesDownstreamFailures(t *testing.T) {
	reports := &fakeReports{}
	history := &fakeHistory{err: errors.New("disk full")}
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	failing := &fakeSink{name: "clickhouse", err: errors.New("refused")}
	ok := &fakeSink{name: "latest"}

	e := NewEmitter(reports, history, notifier, []domrepo.CycleSink{failing, ok}, time.UTC, logger.Nop(), metrics.Nop{})
	require.NoError(t, e.Emit(context.Background(), testRecord()))
	assert.Len(t, failing.got, 1)
	assert.Len(t, ok.got, 1)
}

func TestEmitFailsWhenReportCannotBeWritten(t *testing.T) {
	reports := &fakeReports{err: errors.New("read-only fs")}
	history := &fakeHistory{}

	e := NewEmitter(reports, history, nil, nil, time.UTC, logger.Nop(), metrics.Nop{})
	err := e.Emit(context.Background(), testRecord())
	require.Error(t, err)
	assert.Empty(t, history.records)
}
