package repository

import "strings"

// Timeframe represents a candle resolution.
type Timeframe string

const (
	TF5m  Timeframe = "5m"
	TF15m Timeframe = "15m"
	TF30m Timeframe = "30m"
	TF1h  Timeframe = "1h"
	TF4h  Timeframe = "4h"
	TF6h  Timeframe = "6h"
	TF12h Timeframe = "12h"
	TF1d  Timeframe = "1d"
	TF1w  Timeframe = "1w"
	TF1mo Timeframe = "1mo"
)

var intervalCodes = map[Timeframe]string{
	TF5m:  "5",
	TF15m: "15",
	TF30m: "30",
	TF1h:  "60",
	TF4h:  "240",
	TF6h:  "360",
	TF12h: "720",
	TF1d:  "D",
	TF1w:  "W",
	TF1mo: "M",
}

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	_, ok := intervalCodes[tf]
	return ok
}

// DefaultTimeframes is used when no configured timeframe is valid.
func DefaultTimeframes() []Timeframe { return []Timeframe{TF1d, TF1w} }

// NormalizeTimeframe converts a raw string to a supported timeframe.
// "1M" in upper case is the month, any other case folds to lower.
func NormalizeTimeframe(s string) (Timeframe, bool) {
	s = strings.TrimSpace(s)
	if s == "1M" {
		return TF1mo, true
	}
	tf := Timeframe(strings.ToLower(s))
	return tf, IsValidTimeframe(tf)
}

// ParseTimeframes parses a list of raw timeframes, dropping unknown entries and
// duplicates. The rejected inputs are returned so callers can warn about them.
func ParseTimeframes(raw []string) ([]Timeframe, []string) {
	var (
		out      []Timeframe
		rejected []string
		seen     = make(map[Timeframe]bool)
	)
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		tf, ok := NormalizeTimeframe(s)
		if !ok {
			rejected = append(rejected, s)
			continue
		}
		if seen[tf] {
			continue
		}
		seen[tf] = true
		out = append(out, tf)
	}
	if len(out) == 0 {
		out = DefaultTimeframes()
	}
	return out, rejected
}

// ResolveSortTimeframe returns raw when it is one of tfs, otherwise the first
// entry of tfs and false.
func ResolveSortTimeframe(raw string, tfs []Timeframe) (Timeframe, bool) {
	if tf, ok := NormalizeTimeframe(raw); ok {
		for _, t := range tfs {
			if t == tf {
				return tf, true
			}
		}
	}
	return tfs[0], false
}

// IntervalCode returns the exchange kline interval for tf.
func (tf Timeframe) IntervalCode() string { return intervalCodes[tf] }

// IsLong reports whether tf is week or month class.
func (tf Timeframe) IsLong() bool { return tf == TF1w || tf == TF1mo }

// MinCandles is the shortest series usable for tf.
func (tf Timeframe) MinCandles() int {
	if tf.IsLong() {
		return 30
	}
	return 50
}

// CandleLimit caps limit for long timeframes, which have less history.
func (tf Timeframe) CandleLimit(limit int) int {
	if tf.IsLong() && limit > 120 {
		return 120
	}
	return limit
}

// Strings converts timeframes to their string form.
func Strings(tfs []Timeframe) []string {
	out := make([]string, len(tfs))
	for i, tf := range tfs {
		out[i] = string(tf)
	}
	return out
}
