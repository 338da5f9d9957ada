package usecase

import (
	"sort"

	"TrendScan/internal/domain/models"
)

// Prefilter ranks the universe by 24h range to bound the evaluation stage.
type Prefilter struct {
	Enabled    bool
	TopN       int
	Multiplier int
}

// Size is the number of symbols the prefilter lets through.
func (p Prefilter) Size() int {
	return max(p.TopN*p.Multiplier, p.TopN)
}

// Select returns the universe symbols with the widest 24h range, widest first.
// Ties are broken by symbol so the result is deterministic. When disabled the
// universe is returned unchanged.
func (p Prefilter) Select(universe []string, tickers map[string]models.Ticker) []string {
	if !p.Enabled {
		return universe
	}

	type ranked struct {
		symbol string
		rng    float64
	}
	rows := make([]ranked, 0, len(universe))
	seen := make(map[string]bool, len(universe))
	for _, sym := range universe {
		if seen[sym] {
			continue
		}
		seen[sym] = true
		t, ok := tickers[sym]
		if !ok {
			continue
		}
		if r, ok := t.RangePct(); ok {
			rows = append(rows, ranked{symbol: sym, rng: r})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].rng != rows[j].rng {
			return rows[i].rng > rows[j].rng
		}
		return rows[i].symbol < rows[j].symbol
	})

	n := min(p.Size(), len(rows))
	out := make([]string, n)
	for i := range out {
		out[i] = rows[i].symbol
	}
	return out
}
