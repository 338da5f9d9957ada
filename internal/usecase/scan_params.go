package usecase

import (
	"golang.org/x/sync/errgroup"

	domrepo "TrendScan/internal/domain/repository"
)

// ScanParams is the resolved, immutable configuration of the scan pipeline.
type ScanParams struct {
	Timeframes    []domrepo.Timeframe
	SortTimeframe domrepo.Timeframe
	TopN          int
	CandleLimit   int
	Workers       int
	EnrichWorkers int
	Prefilter     Prefilter
}

// EnrichWorkersFor caps the enrichment pool at six and at the evaluation width.
func EnrichWorkersFor(workers int) int {
	return max(1, min(6, workers))
}

// runPool runs task(i) for i in [0,n) with at most workers concurrent calls
// and returns once every call finished.
func runPool(n, workers int, task func(i int)) {
	var g errgroup.Group
	g.SetLimit(max(1, workers))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			task(i)
			return nil
		})
	}
	_ = g.Wait()
}
