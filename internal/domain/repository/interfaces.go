package repository

import (
	"context"

	"TrendScan/internal/domain/models"
)

// MarketData is the exchange's public market-data surface.
type MarketData interface {
	ListInstruments(ctx context.Context) ([]models.Instrument, error)
	ListTickers(ctx context.Context) (map[string]models.Ticker, error)
	GetCandles(ctx context.Context, symbol string, tf Timeframe, limit int) ([]models.Candle, error)
	// GetOpenInterest is best-effort; false means unavailable.
	GetOpenInterest(ctx context.Context, symbol string, tf Timeframe) (float64, bool)
}

// Notifier delivers a file with a caption to a subscriber.
type Notifier interface {
	SendDocument(ctx context.Context, filename string, content []byte, caption string) error
}

// ReportWriter persists the rendered report and returns its path.
type ReportWriter interface {
	WriteReport(ctx context.Context, text string) (string, error)
}

// HistoryStore is the append-only log of cycle records.
type HistoryStore interface {
	Append(ctx context.Context, rec *models.CycleRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.CycleRecord, error)
}

// CycleSink receives every completed cycle record.
type CycleSink interface {
	Name() string
	Publish(ctx context.Context, rec *models.CycleRecord) error
}

// LatestReader returns the most recent cycle record.
type LatestReader interface {
	Latest(ctx context.Context) (*models.CycleRecord, error)
}

type Metrics interface {
	RecordCycle(outcome string, seconds float64)
	RecordStage(stage string, count int)
	RecordRequest(endpoint, result string, seconds float64)
	RecordRetry(endpoint string)
	RecordError(kind string)
	RecordSinkPublish(sink, result string)
	RecordLatency(op string, seconds float64)
}
