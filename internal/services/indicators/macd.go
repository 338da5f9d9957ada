package indicators

import "math"

// MACD returns the oscillator line (EMA fast - EMA slow), its signal line and
// the histogram, all aligned to close. The signal EMA is seeded on the first
// defined stretch of the line, so the first full triple appears at index
// max(fast, slow)+signal-2.
func MACD(close []float64, fast, slow, signal int) (line, sig, hist []float64) {
	n := len(close)
	line = make([]float64, n)
	sig = make([]float64, n)
	hist = make([]float64, n)
	fillNaN(sig)
	fillNaN(hist)

	fastE := EMA(close, fast)
	slowE := EMA(close, slow)
	start := max(fast, slow) - 1
	for i := range line {
		if i < start {
			line[i] = math.NaN()
			continue
		}
		line[i] = fastE[i] - slowE[i]
	}
	if start >= n {
		return line, sig, hist
	}

	sigTail := EMA(line[start:], signal)
	copy(sig[start:], sigTail)
	for i := start; i < n; i++ {
		hist[i] = line[i] - sig[i]
	}
	return line, sig, hist
}
