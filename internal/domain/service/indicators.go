package service

import (
	"TrendScan/internal/domain/models"
)

// IndicatorEngine computes indicator tail values over a candle series.
type IndicatorEngine interface {
	// Snapshot returns models.ErrInsufficientData when the series cannot seed
	// every lookback window. ATR fields are filled only when withVolatility is set.
	Snapshot(candles []models.Candle, withVolatility bool) (models.IndicatorSnapshot, error)
}
