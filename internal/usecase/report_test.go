package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TrendScan/internal/domain/models"
)

func TestRenderReportEmptySections(t *testing.T) {
	rec := &models.CycleRecord{
		Timestamp:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Timeframes:    []string{"1d", "1w"},
		SortTimeframe: "1d",
	}
	out := RenderReport(rec, time.UTC)

	assert.True(t, strings.HasPrefix(out, "BYBIT MACD SCANNER (1d, 1w) — 2024-03-01 12:00:00 UTC\n"))
	assert.Contains(t, out, "Top entries chosen by ATR 1d")
	assert.Contains(t, out, "BULL:\n"+separator+"\n(empty)\n")
	assert.Contains(t, out, "BEAR:\n"+separator+"\n(empty)\n")
}

func TestRenderReportItems(t *testing.T) {
	oi := 987654.321
	zero := 0.0
	rec := &models.CycleRecord{
		Timestamp:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Timeframes:    []string{"4h", "1d"},
		SortTimeframe: "4h",
		Bull: []models.Candidate{
			{Symbol: "BTCUSDT", Trend: models.TrendBull, RSI: map[string]float64{"4h": 61.234, "1d": 58}, ATRPct: 0.0345, OpenInterest: &oi},
			{Symbol: "ETHUSDT", Trend: models.TrendBull, RSI: map[string]float64{"4h": 55, "1d": 52}, ATRPct: 0.02, OpenInterest: &zero},
		},
	}
	out := RenderReport(rec, time.UTC)

	assert.Contains(t, out, "01. BTC/USDT\n    • ATR 4h: 3.45%\n    • RSI: 4h: 61.23 | 1d: 58.00\n    • OI: 987654.32\n")
	assert.Contains(t, out, "02. ETH/USDT\n    • ATR 4h: 2.00%\n    • RSI: 4h: 55.00 | 1d: 52.00\n\n")
	assert.Equal(t, 1, strings.Count(out, "OI:"))
	assert.Contains(t, out, "BEAR:\n"+separator+"\n(empty)\n")
}

func TestRenderReportUsesLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	rec := &models.CycleRecord{Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Timeframes: []string{"1d"}}
	assert.Contains(t, RenderReport(rec, loc), "2024-03-01 15:00:00 MSK")
}

func TestCaption(t *testing.T) {
	assert.Equal(t, "BYBIT MACD Scanner — report (1d & 1w)", Caption([]string{"1d", "1w"}))
}
