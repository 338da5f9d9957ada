package indicators

import (
	"math"
	"testing"
	"time"

	"TrendScan/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func candlesFromCloses(closes []float64, spread float64) []models.Candle {
	out := make([]models.Candle, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = models.Candle{
			Start: start.Add(time.Duration(i) * time.Hour),
			Open:  c,
			High:  c + spread,
			Low:   c - spread,
			Close: c,
		}
	}
	return out
}

func TestEMASeedsWithSMA(t *testing.T) {
	x := series(10, func(i int) float64 { return float64(i + 1) })
	got := EMA(x, 3)

	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 2.0, got[2], 1e-9)
	// A linear series keeps a constant lag of (p-1)/2.
	assert.InDelta(t, 9.0, got[9], 1e-9)
}

func TestEMAShortSeries(t *testing.T) {
	got := EMA([]float64{1, 2}, 3)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[1]))
}

func TestRSI(t *testing.T) {
	up := series(30, func(i int) float64 { return float64(i) })
	down := series(30, func(i int) float64 { return float64(100 - i) })
	flat := series(30, func(int) float64 { return 5 })

	assert.InDelta(t, 100.0, last(RSI(up, 14)), 1e-9)
	assert.InDelta(t, 0.0, last(RSI(down, 14)), 1e-9)
	assert.InDelta(t, 50.0, last(RSI(flat, 14)), 1e-9)

	r := RSI(up, 14)
	assert.True(t, math.IsNaN(r[13]))
	assert.False(t, math.IsNaN(r[14]))
}

func TestRSIAlternating(t *testing.T) {
	// Equal gains and losses keep RSI at 50 once smoothing starts from a balanced window.
	x := series(41, func(i int) float64 {
		if i%2 == 0 {
			return 10
		}
		return 11
	})
	assert.InDelta(t, 50.0, RSI(x, 2)[2], 1e-9)
}

func TestATRConstantRange(t *testing.T) {
	closes := series(40, func(int) float64 { return 100 })
	highs := series(40, func(int) float64 { return 101 })
	lows := series(40, func(int) float64 { return 99 })

	got := ATR(highs, lows, closes, 14)
	assert.True(t, math.IsNaN(got[12]))
	assert.InDelta(t, 2.0, got[13], 1e-9)
	assert.InDelta(t, 2.0, last(got), 1e-9)
}

func TestTrueRangeUsesPreviousClose(t *testing.T) {
	tr := TrueRange([]float64{10, 12}, []float64{9, 11.5}, []float64{9.5, 12})
	assert.InDelta(t, 1.0, tr[0], 1e-9)
	assert.InDelta(t, 2.5, tr[1], 1e-9)
}

func TestMACDLinearSeriesIsFlat(t *testing.T) {
	x := series(120, func(i int) float64 { return float64(i) })
	line, sig, hist := MACD(x, 12, 26, 9)

	assert.InDelta(t, 7.0, last(line), 1e-9)
	assert.InDelta(t, 7.0, last(sig), 1e-9)
	assert.InDelta(t, 0.0, last(hist), 1e-9)
	assert.True(t, math.IsNaN(sig[32]))
	assert.False(t, math.IsNaN(sig[33]))
}

func TestEngineSnapshotTrend(t *testing.T) {
	e := NewEngine(Lookbacks{MACDFast: 12, MACDSlow: 26, MACDSignal: 9, RSI: 14, ATR: 14})

	accel := candlesFromCloses(series(120, func(i int) float64 { return 100 + float64(i*i)/100 }), 1)
	snap, err := e.Snapshot(accel, true)
	require.NoError(t, err)
	assert.Equal(t, models.TrendBull, snap.Trend())
	assert.Greater(t, snap.ATR, 0.0)
	assert.InDelta(t, snap.ATR/snap.LastClose, snap.ATRPct, 1e-12)

	decel := candlesFromCloses(series(120, func(i int) float64 { return 1000 - float64(i*i)/100 }), 1)
	snap, err = e.Snapshot(decel, false)
	require.NoError(t, err)
	assert.Equal(t, models.TrendBear, snap.Trend())
	assert.Zero(t, snap.ATR)
}

func TestEngineInsufficientData(t *testing.T) {
	e := NewEngine(Lookbacks{MACDFast: 12, MACDSlow: 26, MACDSignal: 9, RSI: 14, ATR: 14})
	assert.Equal(t, 34, e.MinBars())

	_, err := e.Snapshot(candlesFromCloses(series(33, func(i int) float64 { return float64(i) }), 1), true)
	assert.ErrorIs(t, err, models.ErrInsufficientData)

	_, err = e.Snapshot(candlesFromCloses(series(35, func(i int) float64 { return float64(i) }), 1), true)
	assert.NoError(t, err)
}
