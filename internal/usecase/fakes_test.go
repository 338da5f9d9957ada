package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
)

// series describes what fakeMarket returns for one symbol and timeframe.
// The fake engine reads the trend, RSI and ATR% back out of the candles.
type series struct {
	n      int
	trend  models.Trend
	rsi    float64
	atrPct float64
	err    error
}

type fakeMarket struct {
	mu          sync.Mutex
	instruments []models.Instrument
	instErr     error
	tickers     map[string]models.Ticker
	tickErr     error
	series      map[string]map[domrepo.Timeframe]series
	oi          map[string]float64
	oiCalls     []string
	limits      map[domrepo.Timeframe]int
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		series: make(map[string]map[domrepo.Timeframe]series),
		oi:     make(map[string]float64),
		limits: make(map[domrepo.Timeframe]int),
	}
}

func (f *fakeMarket) set(symbol string, tf domrepo.Timeframe, s series) {
	if f.series[symbol] == nil {
		f.series[symbol] = make(map[domrepo.Timeframe]series)
	}
	f.series[symbol][tf] = s
}

func (f *fakeMarket) ListInstruments(context.Context) ([]models.Instrument, error) {
	return f.instruments, f.instErr
}

func (f *fakeMarket) ListTickers(context.Context) (map[string]models.Ticker, error) {
	return f.tickers, f.tickErr
}

func (f *fakeMarket) GetCandles(_ context.Context, symbol string, tf domrepo.Timeframe, limit int) ([]models.Candle, error) {
	f.mu.Lock()
	f.limits[tf] = limit
	s, ok := f.series[symbol][tf]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("no data")
	}
	if s.err != nil {
		return nil, s.err
	}

	code := 0.0
	switch s.trend {
	case models.TrendBull:
		code = 1
	case models.TrendBear:
		code = -1
	}
	out := make([]models.Candle, s.n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = models.Candle{Start: start.Add(time.Duration(i) * time.Hour), Open: s.rsi, High: s.atrPct, Close: code}
	}
	return out, nil
}

func (f *fakeMarket) GetOpenInterest(_ context.Context, symbol string, _ domrepo.Timeframe) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oiCalls = append(f.oiCalls, symbol)
	v, ok := f.oi[symbol]
	return v, ok
}

type fakeEngine struct{}

func (fakeEngine) Snapshot(candles []models.Candle, withVolatility bool) (models.IndicatorSnapshot, error) {
	c := candles[len(candles)-1]
	snap := models.IndicatorSnapshot{MACD: c.Close, Histogram: c.Close, RSI: c.Open, LastClose: 100}
	if withVolatility {
		snap.ATRPct = c.High
		snap.ATR = c.High * 100
	}
	return snap, nil
}

type fakeReports struct {
	text string
	err  error
}

func (f *fakeReports) WriteReport(_ context.Context, text string) (string, error) {
	f.text = text
	return "output/last_report.txt", f.err
}

type fakeHistory struct {
	records []models.CycleRecord
	err     error
}

func (f *fakeHistory) Append(_ context.Context, rec *models.CycleRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeHistory) Recent(context.Context, int) ([]models.CycleRecord, error) {
	return f.records, nil
}

type fakeNotifier struct {
	filename, caption string
	content           []byte
	err               error
}

func (f *fakeNotifier) SendDocument(_ context.Context, filename string, content []byte, caption string) error {
	f.filename, f.content, f.caption = filename, content, caption
	return f.err
}

type fakeSink struct {
	name string
	got  []*models.CycleRecord
	err  error
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Publish(_ context.Context, rec *models.CycleRecord) error {
	f.got = append(f.got, rec)
	return f.err
}

func defaultParams() ScanParams {
	return ScanParams{
		Timeframes:    []domrepo.Timeframe{domrepo.TF4h, domrepo.TF1d, domrepo.TF1w},
		SortTimeframe: domrepo.TF4h,
		TopN:          100,
		CandleLimit:   200,
		Workers:       4,
		EnrichWorkers: 2,
		Prefilter:     Prefilter{Enabled: true, TopN: 100, Multiplier: 1},
	}
}
