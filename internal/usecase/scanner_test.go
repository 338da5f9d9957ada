package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
	"TrendScan/pkg/logger"
	"TrendScan/pkg/metrics"
)

type scannerFixture struct {
	market  *fakeMarket
	reports *fakeReports
	history *fakeHistory
	scanner *Scanner
}

func newScannerFixture(p ScanParams) *scannerFixture {
	f := &scannerFixture{market: newFakeMarket(), reports: &fakeReports{}, history: &fakeHistory{}}
	l, m := logger.Nop(), metrics.Nop{}
	f.scanner = NewScanner(
		f.market,
		NewEvaluator(f.market, fakeEngine{}, p, l, m),
		NewEnricher(f.market, p),
		NewEmitter(f.reports, f.history, nil, nil, time.UTC, l, m),
		p, l, m,
	)
	f.scanner.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC) }
	return f
}

func (f *scannerFixture) add(symbol string, trend models.Trend, rng, atrPct float64, p ScanParams) {
	f.market.instruments = append(f.market.instruments, models.Instrument{Symbol: symbol})
	if f.market.tickers == nil {
		f.market.tickers = make(map[string]models.Ticker)
	}
	f.market.tickers[symbol] = models.Ticker{Symbol: symbol, High24h: 100 + rng*100, Low24h: 100, Last: 100}
	for _, tf := range p.Timeframes {
		f.market.set(symbol, tf, series{n: 200, trend: trend, rsi: 50, atrPct: atrPct})
	}
}

func TestRunCycle(t *testing.T) {
	p := defaultParams()
	p.TopN = 1
	p.Prefilter = Prefilter{Enabled: true, TopN: 1, Multiplier: 3}

	f := newScannerFixture(p)
	f.add("AUSDT", models.TrendBull, 0.30, 0.02, p)
	f.add("BUSDT", models.TrendBull, 0.20, 0.05, p)
	f.add("CUSDT", models.TrendBear, 0.10, 0.01, p)
	f.add("DUSDT", models.TrendBear, 0.01, 0.09, p) // cut by the prefilter
	f.market.oi["BUSDT"] = 42

	rec, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), rec.Timestamp)
	assert.Equal(t, []string{"4h", "1d", "1w"}, rec.Timeframes)
	assert.Equal(t, "4h", rec.SortTimeframe)

	require.Len(t, rec.Bull, 1)
	assert.Equal(t, "BUSDT", rec.Bull[0].Symbol)
	require.NotNil(t, rec.Bull[0].OpenInterest)
	assert.InDelta(t, 42, *rec.Bull[0].OpenInterest, 1e-9)

	require.Len(t, rec.Bear, 1)
	assert.Equal(t, "CUSDT", rec.Bear[0].Symbol)

	// Only the ranked survivors are enriched.
	assert.ElementsMatch(t, []string{"BUSDT", "CUSDT"}, f.market.oiCalls)
	require.Len(t, f.history.records, 1)
	assert.Equal(t, rec.ID, f.history.records[0].ID)
	assert.NotContains(t, f.reports.text, "02. ")
}

func TestRunCycleListingFailure(t *testing.T) {
	f := newScannerFixture(defaultParams())
	f.market.instErr = errors.New("connection refused")

	_, err := f.scanner.RunCycle(context.Background())
	require.Error(t, err)
	assert.Empty(t, f.reports.text)
	assert.Empty(t, f.history.records)
}

func TestRunCycleTickerFailure(t *testing.T) {
	p := defaultParams()
	f := newScannerFixture(p)
	f.add("AUSDT", models.TrendBull, 0.3, 0.02, p)
	f.market.tickErr = errors.New("timeout")

	_, err := f.scanner.RunCycle(context.Background())
	require.Error(t, err)
}

func TestRunCycleWithoutPrefilter(t *testing.T) {
	p := defaultParams()
	p.Prefilter.Enabled = false
	f := newScannerFixture(p)
	f.add("AUSDT", models.TrendBull, 0, 0.02, p)
	f.market.tickErr = errors.New("not called")

	rec, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, rec.Bull, 1)
	assert.Empty(t, rec.Bear)
	assert.Equal(t, []domrepo.Timeframe{domrepo.TF4h, domrepo.TF1d, domrepo.TF1w}, p.Timeframes)
}
