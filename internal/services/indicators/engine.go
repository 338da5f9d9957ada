package indicators

import (
	"fmt"
	"math"

	"TrendScan/internal/domain/models"
)

// Lookbacks are the indicator window lengths.
type Lookbacks struct {
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSI        int
	ATR        int
}

// Engine computes indicator snapshots with fixed lookbacks.
type Engine struct {
	lb Lookbacks
}

func NewEngine(lb Lookbacks) *Engine {
	return &Engine{lb: lb}
}

// MinBars is the shortest series from which every indicator yields a value.
func (e *Engine) MinBars() int {
	return max(max(e.lb.MACDFast, e.lb.MACDSlow)+e.lb.MACDSignal-1, e.lb.RSI+1, e.lb.ATR)
}

// Snapshot implements service.IndicatorEngine.
func (e *Engine) Snapshot(candles []models.Candle, withVolatility bool) (models.IndicatorSnapshot, error) {
	if len(candles) < e.MinBars() {
		return models.IndicatorSnapshot{}, fmt.Errorf("%d bars, need %d: %w", len(candles), e.MinBars(), models.ErrInsufficientData)
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	line, sig, hist := MACD(closes, e.lb.MACDFast, e.lb.MACDSlow, e.lb.MACDSignal)
	snap := models.IndicatorSnapshot{
		MACD:      last(line),
		Signal:    last(sig),
		Histogram: last(hist),
		RSI:       last(RSI(closes, e.lb.RSI)),
		LastClose: last(closes),
	}

	if withVolatility {
		highs := make([]float64, len(candles))
		lows := make([]float64, len(candles))
		for i, c := range candles {
			highs[i] = c.High
			lows[i] = c.Low
		}
		snap.ATR = last(ATR(highs, lows, closes, e.lb.ATR))
		if snap.LastClose != 0 {
			snap.ATRPct = snap.ATR / snap.LastClose
		}
	}

	for _, v := range []float64{snap.MACD, snap.Signal, snap.Histogram, snap.RSI, snap.ATR} {
		if math.IsNaN(v) {
			return models.IndicatorSnapshot{}, models.ErrInsufficientData
		}
	}
	return snap, nil
}
