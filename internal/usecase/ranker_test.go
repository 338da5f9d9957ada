package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScan/internal/domain/models"
)

func TestRankKeepsMostVolatile(t *testing.T) {
	var cands []*models.Candidate
	for i := 0; i < 150; i++ {
		cands = append(cands, &models.Candidate{
			Symbol: fmt.Sprintf("S%03dUSDT", i),
			Trend:  models.TrendBull,
			ATRPct: float64(i) / 1000,
		})
	}
	cands = append(cands, &models.Candidate{Symbol: "BEARUSDT", Trend: models.TrendBear, ATRPct: 0.5})

	bull, bear := Rank(cands, 100)
	require.Len(t, bull, 100)
	require.Len(t, bear, 1)
	assert.Equal(t, "S149USDT", bull[0].Symbol)
	assert.Equal(t, "S050USDT", bull[99].Symbol)
	for _, c := range bull {
		assert.GreaterOrEqual(t, c.ATRPct, 0.05)
	}
}

func TestSortForDisplay(t *testing.T) {
	cands := []*models.Candidate{
		{Symbol: "AUSDT", RSI: map[string]float64{"1d": 50, "1w": 50}},
		{Symbol: "BUSDT", RSI: map[string]float64{"1d": 70, "1w": 60}},
		{Symbol: "CUSDT", RSI: map[string]float64{"1d": 55, "1w": 45}},
	}
	SortForDisplay(cands)
	assert.Equal(t, "BUSDT", cands[0].Symbol)
	assert.Equal(t, "AUSDT", cands[1].Symbol)
	assert.Equal(t, "CUSDT", cands[2].Symbol)
}

func TestEnrichSetsAvailableOpenInterest(t *testing.T) {
	m := newFakeMarket()
	m.oi["AUSDT"] = 1234.5
	cands := []*models.Candidate{{Symbol: "AUSDT"}, {Symbol: "BUSDT"}}

	NewEnricher(m, defaultParams()).Enrich(context.Background(), cands)

	require.NotNil(t, cands[0].OpenInterest)
	assert.InDelta(t, 1234.5, *cands[0].OpenInterest, 1e-9)
	assert.Nil(t, cands[1].OpenInterest)
	assert.ElementsMatch(t, []string{"AUSDT", "BUSDT"}, m.oiCalls)
}

func TestEnrichWorkersFor(t *testing.T) {
	assert.Equal(t, 1, EnrichWorkersFor(0))
	assert.Equal(t, 4, EnrichWorkersFor(4))
	assert.Equal(t, 6, EnrichWorkersFor(12))
}
