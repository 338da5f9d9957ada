package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"TrendScan/internal/domain/models"
	pkgch "TrendScan/pkg/clickhouse"
	applogger "TrendScan/pkg/logger"
)

const candidatesTable = "scan_candidates"

const candidateColumns = "cycle_id, ts, symbol, trend, sort_tf, atr_abs, atr_pct, rsi_json, rsi_sum, oi"

// ClickHouseCycleSink stores one row per ranked candidate.
type ClickHouseCycleSink struct {
	conn  driver.Conn
	table string
	l     *applogger.Logger
}

// NewClickHouseCycleSink writes to database.scan_candidates, see Schema.
func NewClickHouseCycleSink(ch *pkgch.Client, database string, l *applogger.Logger) *ClickHouseCycleSink {
	return &ClickHouseCycleSink{conn: ch.Conn(), table: database + "." + candidatesTable, l: l}
}

// Schema returns the DDL for the candidates table in database.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
            cycle_id String,
            ts DateTime,
            symbol LowCardinality(String),
            trend LowCardinality(String),
            sort_tf LowCardinality(String),
            atr_abs Float64,
            atr_pct Float64,
            rsi_json String,
            rsi_sum Float64,
            oi Nullable(Float64)
        ) ENGINE = MergeTree
        ORDER BY (ts, symbol)`, database, candidatesTable),
	}
}

func (s *ClickHouseCycleSink) Name() string { return "clickhouse" }

func (s *ClickHouseCycleSink) Publish(ctx context.Context, rec *models.CycleRecord) error {
	rows, err := candidateRows(rec)
	if err != nil || len(rows) == 0 {
		return err
	}

	batch, err := s.conn.PrepareBatch(ctx, fmt.Sprintf("INSERT INTO %s (%s)", s.table, candidateColumns))
	if err != nil {
		return fmt.Errorf("prepare candidates batch: %w", err)
	}
	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append candidate: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		s.l.Error("clickhouse insert candidates error",
			applogger.String("table", s.table),
			applogger.String("cycle_id", rec.ID),
			applogger.Int("rows", len(rows)),
			applogger.Error(err),
		)
		return fmt.Errorf("send candidates batch: %w", err)
	}
	return nil
}

// candidateRows flattens rec into one row per candidate, bull group first,
// in candidateColumns order.
func candidateRows(rec *models.CycleRecord) ([][]interface{}, error) {
	rows := make([][]interface{}, 0, len(rec.Bull)+len(rec.Bear))
	for _, group := range [][]models.Candidate{rec.Bull, rec.Bear} {
		for i := range group {
			c := &group[i]
			rsi, err := json.Marshal(c.RSI)
			if err != nil {
				return nil, fmt.Errorf("marshal rsi: %w", err)
			}
			rows = append(rows, []interface{}{
				rec.ID,
				rec.Timestamp,
				c.Symbol,
				string(c.Trend),
				rec.SortTimeframe,
				c.ATR,
				c.ATRPct,
				string(rsi),
				c.RSISum(),
				c.OpenInterest,
			})
		}
	}
	return rows, nil
}
