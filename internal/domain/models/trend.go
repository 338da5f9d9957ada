package models

// Trend is the directional bias derived from MACD.
type Trend string

const (
	TrendBull    Trend = "BULL"
	TrendBear    Trend = "BEAR"
	TrendNeutral Trend = "NEUTRAL"
)

// Classify maps a MACD line, signal line and histogram to a Trend.
func Classify(macd, signal, hist float64) Trend {
	switch {
	case macd > signal && hist > 0:
		return TrendBull
	case macd < signal && hist < 0:
		return TrendBear
	default:
		return TrendNeutral
	}
}
