package indicators

// RSI with Wilder smoothing. The first value sits at index p; earlier slots are NaN.
func RSI(close []float64, p int) []float64 {
	out := make([]float64, len(close))
	fillNaN(out)
	if p <= 0 || len(close) <= p {
		return out
	}

	var gain, loss float64
	for i := 1; i <= p; i++ {
		d := close[i] - close[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(p)
	avgLoss := loss / float64(p)
	out[p] = rsiValue(avgGain, avgLoss)

	for i := p + 1; i < len(close); i++ {
		d := close[i] - close[i-1]
		var g, l float64
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		avgGain = (avgGain*float64(p-1) + g) / float64(p)
		avgLoss = (avgLoss*float64(p-1) + l) / float64(p)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgLoss == 0 && avgGain == 0:
		return 50
	case avgLoss == 0:
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
