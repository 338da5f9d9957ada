package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
	"TrendScan/pkg/logger"
)

// Emitter writes the report, appends history, notifies and fans the record out to sinks.
type Emitter struct {
	reports  domrepo.ReportWriter
	history  domrepo.HistoryStore
	notifier domrepo.Notifier
	sinks    []domrepo.CycleSink
	location *time.Location
	logger   *logger.Logger
	metrics  domrepo.Metrics
}

func NewEmitter(
	reports domrepo.ReportWriter,
	history domrepo.HistoryStore,
	notifier domrepo.Notifier,
	sinks []domrepo.CycleSink,
	location *time.Location,
	l *logger.Logger,
	m domrepo.Metrics,
) *Emitter {
	return &Emitter{
		reports:  reports,
		history:  history,
		notifier: notifier,
		sinks:    sinks,
		location: location,
		logger:   l,
		metrics:  m,
	}
}

// Emit fails only when the report cannot be written. History, delivery and
// sink failures are logged.
func (e *Emitter) Emit(ctx context.Context, rec *models.CycleRecord) error {
	text := RenderReport(rec, e.location)
	path, err := e.reports.WriteReport(ctx, text)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	e.logger.Info("report written", logger.String("path", path))

	if err := e.history.Append(ctx, rec); err != nil {
		e.metrics.RecordError("history")
		e.logger.Error("history append failed", logger.Error(err))
	}

	if e.notifier != nil {
		start := time.Now()
		if err := e.notifier.SendDocument(ctx, filepath.Base(path), []byte(text), Caption(rec.Timeframes)); err != nil {
			e.metrics.RecordError("notify")
			e.logger.Error("report delivery failed", logger.Error(err))
		} else {
			e.metrics.RecordLatency("notify", time.Since(start).Seconds())
			e.logger.Info("report delivered")
		}
	}

	for _, s := range e.sinks {
		result := "ok"
		if err := s.Publish(ctx, rec); err != nil {
			result = "error"
			e.logger.Error("cycle sink failed", logger.String("sink", s.Name()), logger.Error(err))
		}
		e.metrics.RecordSinkPublish(s.Name(), result)
	}
	return nil
}
