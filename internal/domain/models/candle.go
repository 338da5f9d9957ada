package models

import "time"

// Candle represents one OHLCV bar. Series are ordered ascending by Start.
type Candle struct {
	Start    time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	Turnover *float64 // nil when the provider omits it
}

// IndicatorSnapshot holds the tail values of the indicators for one series.
type IndicatorSnapshot struct {
	MACD      float64
	Signal    float64
	Histogram float64
	RSI       float64
	ATR       float64 // zero unless volatility was requested
	ATRPct    float64
	LastClose float64
}

// Trend classifies the snapshot's MACD triple.
func (s IndicatorSnapshot) Trend() Trend {
	return Classify(s.MACD, s.Signal, s.Histogram)
}
