package usecase

import (
	"context"
	"sort"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
)

// Rank splits accepted candidates by trend and keeps the topN of each group
// with the highest sort-timeframe ATR percent.
func Rank(cands []*models.Candidate, topN int) (bull, bear []*models.Candidate) {
	for _, c := range cands {
		switch c.Trend {
		case models.TrendBull:
			bull = append(bull, c)
		case models.TrendBear:
			bear = append(bear, c)
		}
	}
	return truncateByVolatility(bull, topN), truncateByVolatility(bear, topN)
}

func truncateByVolatility(cands []*models.Candidate, topN int) []*models.Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].ATRPct != cands[j].ATRPct {
			return cands[i].ATRPct > cands[j].ATRPct
		}
		return cands[i].Symbol < cands[j].Symbol
	})
	if topN >= 0 && len(cands) > topN {
		cands = cands[:topN]
	}
	return cands
}

// SortForDisplay orders candidates by RSI summed over all timeframes, highest first.
func SortForDisplay(cands []*models.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		si, sj := cands[i].RSISum(), cands[j].RSISum()
		if si != sj {
			return si > sj
		}
		return cands[i].Symbol < cands[j].Symbol
	})
}

// Enricher attaches open interest to ranked candidates.
type Enricher struct {
	market    domrepo.MarketData
	timeframe domrepo.Timeframe
	workers   int
}

func NewEnricher(market domrepo.MarketData, params ScanParams) *Enricher {
	return &Enricher{market: market, timeframe: params.SortTimeframe, workers: params.EnrichWorkers}
}

// Enrich fetches open interest for each candidate; unavailable values stay nil.
func (e *Enricher) Enrich(ctx context.Context, cands []*models.Candidate) {
	runPool(len(cands), e.workers, func(i int) {
		if oi, ok := e.market.GetOpenInterest(ctx, cands[i].Symbol, e.timeframe); ok {
			cands[i].OpenInterest = &oi
		}
	})
}
