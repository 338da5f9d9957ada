package bybit

import (
	"strings"

	"TrendScan/internal/domain/models"
)

// IsTradableUSDT reports whether inst is a trading USDT contract and, for the
// linear category, a perpetual one.
func IsTradableUSDT(inst models.Instrument, category string) bool {
	if !strings.Contains(strings.ToLower(inst.Status), "trading") {
		return false
	}
	if !strings.EqualFold(inst.QuoteCoin, "USDT") && !strings.EqualFold(inst.SettleCoin, "USDT") {
		return false
	}
	if category == CategoryLinear && inst.ContractType != "" &&
		!strings.Contains(strings.ToLower(inst.ContractType), "perpetual") {
		return false
	}
	return true
}

// FilterInstruments keeps the instruments accepted by IsTradableUSDT, in order.
func FilterInstruments(in []models.Instrument, category string) []models.Instrument {
	out := make([]models.Instrument, 0, len(in))
	for _, inst := range in {
		if IsTradableUSDT(inst, category) {
			out = append(out, inst)
		}
	}
	return out
}
