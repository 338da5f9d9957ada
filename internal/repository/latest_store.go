package repository

import (
	"context"
	"errors"

	"TrendScan/internal/domain/models"
	"TrendScan/pkg/cache"
)

var latestKey = cache.Key("scan", "latest")

// LatestStore keeps the most recent cycle record in the cache. It is both a
// cycle sink and the reader behind the status API.
type LatestStore struct {
	cache cache.Service
}

func NewLatestStore(c cache.Service) *LatestStore {
	return &LatestStore{cache: c}
}

func (s *LatestStore) Name() string { return "latest" }

func (s *LatestStore) Publish(ctx context.Context, rec *models.CycleRecord) error {
	return s.cache.Set(ctx, latestKey, rec, 0)
}

// Latest returns models.ErrNoCycle until the first record was published.
func (s *LatestStore) Latest(ctx context.Context) (*models.CycleRecord, error) {
	rec, err := cache.GetTyped[models.CycleRecord](ctx, s.cache, latestKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, models.ErrNoCycle
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
