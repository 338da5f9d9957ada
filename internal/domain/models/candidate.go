package models

import "strings"

// Candidate is a symbol whose trend agreed across every configured timeframe.
type Candidate struct {
	Symbol       string             `json:"symbol"`
	Trend        Trend              `json:"trend"`
	RSI          map[string]float64 `json:"rsi"`
	ATR          float64            `json:"atr_abs"`
	ATRPct       float64            `json:"atr_pct"`
	OpenInterest *float64           `json:"oi,omitempty"`
}

// RSISum is the display ranking key.
func (c *Candidate) RSISum() float64 {
	var sum float64
	for _, v := range c.RSI {
		sum += v
	}
	return sum
}

// DisplaySymbol renders BTCUSDT as BTC/USDT.
func (c *Candidate) DisplaySymbol() string {
	if base, ok := strings.CutSuffix(c.Symbol, "USDT"); ok && base != "" {
		return base + "/USDT"
	}
	return c.Symbol
}

// HasOpenInterest reports whether a positive open interest was fetched.
func (c *Candidate) HasOpenInterest() bool {
	return c.OpenInterest != nil && *c.OpenInterest > 0
}
