package indicators

import "math"

// TrueRange per bar; the first bar has no previous close and uses high-low.
func TrueRange(high, low, close []float64) []float64 {
	out := make([]float64, len(close))
	for i := range close {
		hl := high[i] - low[i]
		if i == 0 {
			out[i] = hl
			continue
		}
		hc := math.Abs(high[i] - close[i-1])
		lc := math.Abs(low[i] - close[i-1])
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATR with Wilder smoothing, seeded by the mean of the first p true ranges.
func ATR(high, low, close []float64, p int) []float64 {
	out := make([]float64, len(close))
	fillNaN(out)
	if p <= 0 || len(close) < p || len(high) != len(close) || len(low) != len(close) {
		return out
	}

	tr := TrueRange(high, low, close)
	var seed float64
	for i := 0; i < p; i++ {
		seed += tr[i]
	}
	out[p-1] = seed / float64(p)
	for i := p; i < len(close); i++ {
		out[i] = (out[i-1]*float64(p-1) + tr[i]) / float64(p)
	}
	return out
}
