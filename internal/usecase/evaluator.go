package usecase

import (
	"context"
	"errors"
	"fmt"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
	"TrendScan/internal/domain/service"
	"TrendScan/pkg/logger"
)

var (
	// ErrNoTrend rejects a symbol with a NEUTRAL timeframe.
	ErrNoTrend = errors.New("neutral trend")
	// ErrTrendMismatch rejects a symbol whose timeframes disagree.
	ErrTrendMismatch = errors.New("trend mismatch across timeframes")
)

// Evaluator decides per symbol whether every timeframe shares one trend.
type Evaluator struct {
	market  domrepo.MarketData
	engine  service.IndicatorEngine
	params  ScanParams
	logger  *logger.Logger
	metrics domrepo.Metrics
}

func NewEvaluator(market domrepo.MarketData, engine service.IndicatorEngine, params ScanParams, l *logger.Logger, m domrepo.Metrics) *Evaluator {
	return &Evaluator{market: market, engine: engine, params: params, logger: l, metrics: m}
}

type evalResult struct {
	symbol    string
	candidate *models.Candidate
	err       error
}

// Evaluate fetches every configured timeframe for symbol and returns a
// Candidate when all of them agree on BULL or BEAR. Any other outcome is an
// error describing the rejection.
func (e *Evaluator) Evaluate(ctx context.Context, symbol string) (*models.Candidate, error) {
	cand := &models.Candidate{
		Symbol: symbol,
		RSI:    make(map[string]float64, len(e.params.Timeframes)),
	}

	for i, tf := range e.params.Timeframes {
		candles, err := e.market.GetCandles(ctx, symbol, tf, tf.CandleLimit(e.params.CandleLimit))
		if err != nil {
			return nil, err
		}
		if len(candles) < tf.MinCandles() {
			return nil, fmt.Errorf("%s %s: %d candles, need %d: %w", symbol, tf, len(candles), tf.MinCandles(), models.ErrInsufficientData)
		}

		isSort := tf == e.params.SortTimeframe
		snap, err := e.engine.Snapshot(candles, isSort)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", symbol, tf, err)
		}

		trend := snap.Trend()
		switch {
		case trend == models.TrendNeutral:
			return nil, fmt.Errorf("%s %s: %w", symbol, tf, ErrNoTrend)
		case i == 0:
			cand.Trend = trend
		case trend != cand.Trend:
			return nil, fmt.Errorf("%s %s is %s, expected %s: %w", symbol, tf, trend, cand.Trend, ErrTrendMismatch)
		}

		cand.RSI[string(tf)] = snap.RSI
		if isSort {
			cand.ATR = snap.ATR
			cand.ATRPct = snap.ATRPct
		}
	}
	return cand, nil
}

// EvaluateAll evaluates symbols on a bounded pool and returns the accepted
// candidates in input order. Rejections are logged at debug level only.
func (e *Evaluator) EvaluateAll(ctx context.Context, symbols []string) []*models.Candidate {
	results := make([]evalResult, len(symbols))
	runPool(len(symbols), e.params.Workers, func(i int) {
		c, err := e.Evaluate(ctx, symbols[i])
		results[i] = evalResult{symbol: symbols[i], candidate: c, err: err}
	})

	var (
		accepted                        []*models.Candidate
		short, neutral, mismatch, fails int
	)
	for _, r := range results {
		switch {
		case r.err == nil:
			accepted = append(accepted, r.candidate)
			continue
		case errors.Is(r.err, models.ErrInsufficientData):
			short++
		case errors.Is(r.err, ErrNoTrend):
			neutral++
		case errors.Is(r.err, ErrTrendMismatch):
			mismatch++
		default:
			fails++
			e.metrics.RecordError("evaluate")
		}
		e.logger.Debug("symbol rejected", logger.String("symbol", r.symbol), logger.Error(r.err))
	}

	e.logger.Info("evaluation finished",
		logger.Int("symbols", len(symbols)),
		logger.Int("accepted", len(accepted)),
		logger.Int("insufficient", short),
		logger.Int("neutral", neutral),
		logger.Int("mismatch", mismatch),
		logger.Int("failed", fails),
	)
	return accepted
}
