package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
	"TrendScan/pkg/logger"
)

// Scanner runs one scan cycle end to end.
type Scanner struct {
	market    domrepo.MarketData
	evaluator *Evaluator
	enricher  *Enricher
	emitter   *Emitter
	params    ScanParams
	logger    *logger.Logger
	metrics   domrepo.Metrics
	now       func() time.Time
}

func NewScanner(
	market domrepo.MarketData,
	evaluator *Evaluator,
	enricher *Enricher,
	emitter *Emitter,
	params ScanParams,
	l *logger.Logger,
	m domrepo.Metrics,
) *Scanner {
	return &Scanner{
		market:    market,
		evaluator: evaluator,
		enricher:  enricher,
		emitter:   emitter,
		params:    params,
		logger:    l.With(logger.String("component", "scanner")),
		metrics:   m,
		now:       time.Now,
	}
}

// RunCycle lists the universe, prefilters, evaluates, ranks, enriches and
// emits. Stages run strictly in that order. Listing failures are returned.
func (s *Scanner) RunCycle(ctx context.Context) (*models.CycleRecord, error) {
	rec := &models.CycleRecord{
		ID:            uuid.NewString(),
		Timestamp:     s.now().UTC().Truncate(time.Second),
		Timeframes:    domrepo.Strings(s.params.Timeframes),
		SortTimeframe: string(s.params.SortTimeframe),
	}
	cycleID := logger.String("cycle_id", rec.ID)

	instruments, err := s.market.ListInstruments(ctx)
	if err != nil {
		return nil, fmt.Errorf("instruments: %w", err)
	}
	universe := make([]string, len(instruments))
	for i, inst := range instruments {
		universe[i] = inst.Symbol
	}
	s.metrics.RecordStage("universe", len(universe))
	s.logger.Info("universe loaded", cycleID, logger.Int("symbols", len(universe)))

	selected := universe
	if s.params.Prefilter.Enabled {
		tickers, err := s.market.ListTickers(ctx)
		if err != nil {
			return nil, fmt.Errorf("tickers: %w", err)
		}
		selected = s.params.Prefilter.Select(universe, tickers)
		s.logger.Info("prefilter applied", cycleID,
			logger.Int("selected", len(selected)),
			logger.Int("multiplier", s.params.Prefilter.Multiplier),
		)
	}
	s.metrics.RecordStage("prefiltered", len(selected))

	accepted := s.evaluator.EvaluateAll(ctx, selected)
	s.metrics.RecordStage("accepted", len(accepted))

	bull, bear := Rank(accepted, s.params.TopN)
	s.metrics.RecordStage("bull", len(bull))
	s.metrics.RecordStage("bear", len(bear))

	ranked := make([]*models.Candidate, 0, len(bull)+len(bear))
	ranked = append(ranked, bull...)
	ranked = append(ranked, bear...)
	s.enricher.Enrich(ctx, ranked)

	SortForDisplay(bull)
	SortForDisplay(bear)
	rec.Bull = flatten(bull)
	rec.Bear = flatten(bear)
	s.logger.Info("ranking finished", cycleID, logger.Int("bull", len(rec.Bull)), logger.Int("bear", len(rec.Bear)))

	if err := s.emitter.Emit(ctx, rec); err != nil {
		return rec, fmt.Errorf("emit: %w", err)
	}
	return rec, nil
}

func flatten(cands []*models.Candidate) []models.Candidate {
	out := make([]models.Candidate, len(cands))
	for i, c := range cands {
		out[i] = *c
	}
	return out
}
