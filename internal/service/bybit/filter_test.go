package bybit

import (
	"testing"

	"TrendScan/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestIsTradableUSDT(t *testing.T) {
	tests := []struct {
		name     string
		inst     models.Instrument
		category string
		want     bool
	}{
		{"perp", models.Instrument{Symbol: "BTCUSDT", QuoteCoin: "USDT", SettleCoin: "USDT", ContractType: "LinearPerpetual", Status: "Trading"}, CategoryLinear, true},
		{"settle only", models.Instrument{Symbol: "X", QuoteCoin: "BTC", SettleCoin: "USDT", ContractType: "LinearPerpetual", Status: "Trading"}, CategoryLinear, true},
		{"usdc", models.Instrument{Symbol: "BTCPERP", QuoteCoin: "USDC", SettleCoin: "USDC", ContractType: "LinearPerpetual", Status: "Trading"}, CategoryLinear, false},
		{"futures", models.Instrument{Symbol: "BTC-26DEC", QuoteCoin: "USDT", SettleCoin: "USDT", ContractType: "LinearFutures", Status: "Trading"}, CategoryLinear, false},
		{"prelaunch", models.Instrument{Symbol: "NEWUSDT", QuoteCoin: "USDT", ContractType: "LinearPerpetual", Status: "PreLaunch"}, CategoryLinear, false},
		{"no contract type", models.Instrument{Symbol: "BTCUSDT", QuoteCoin: "USDT", Status: "Trading"}, CategoryLinear, true},
		{"spot ignores contract type", models.Instrument{Symbol: "BTCUSDT", QuoteCoin: "USDT", ContractType: "Spot", Status: "Trading"}, CategorySpot, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTradableUSDT(tt.inst, tt.category))
		})
	}
}

func TestFilterInstrumentsIdempotent(t *testing.T) {
	in := []models.Instrument{
		{Symbol: "BTCUSDT", QuoteCoin: "USDT", ContractType: "LinearPerpetual", Status: "Trading"},
		{Symbol: "ETHUSDC", QuoteCoin: "USDC", ContractType: "LinearPerpetual", Status: "Trading"},
		{Symbol: "SOLUSDT", QuoteCoin: "USDT", ContractType: "LinearPerpetual", Status: "Settling"},
		{Symbol: "XRPUSDT", SettleCoin: "usdt", ContractType: "linearperpetual", Status: "trading"},
	}

	once := FilterInstruments(in, CategoryLinear)
	twice := FilterInstruments(once, CategoryLinear)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 2)
	for _, inst := range once {
		assert.True(t, IsTradableUSDT(inst, CategoryLinear))
	}
}
