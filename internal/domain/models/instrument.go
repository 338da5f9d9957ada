package models

// Instrument is a tradable contract as listed by the exchange.
type Instrument struct {
	Symbol       string
	BaseCoin     string
	QuoteCoin    string
	SettleCoin   string
	ContractType string
	Status       string
}

// Ticker is a 24h snapshot for one symbol.
type Ticker struct {
	Symbol  string
	High24h float64
	Low24h  float64
	Last    float64
}

// RangePct returns (high-low)/last, or false when any price is non-positive.
func (t Ticker) RangePct() (float64, bool) {
	if t.Last <= 0 || t.High24h <= 0 || t.Low24h <= 0 {
		return 0, false
	}
	return (t.High24h - t.Low24h) / t.Last, true
}
