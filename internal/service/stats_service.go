package service

import (
	"context"

	"github.com/bargainhunt/backend/internal/models"
)

// DefaultSavingsBaseline is the starting value of the savings counter
const DefaultSavingsBaseline int64 = 12450

// StatsService exposes the global savings counter
type StatsService struct {
	stats    StatsStore
	baseline int64
}

// NewStatsService creates a stats service seeded with baseline
func NewStatsService(stats StatsStore, baseline int64) *StatsService {
	return &StatsService{stats: stats, baseline: baseline}
}

// Seed creates the counter at the baseline if it does not exist
func (s *StatsService) Seed(ctx context.Context) error {
	return s.stats.Seed(ctx, models.SavingsCountKey, s.baseline)
}

// Get returns the current savings count
func (s *StatsService) Get(ctx context.Context) (int64, error) {
	return s.stats.Get(ctx, models.SavingsCountKey)
}

// Increment adds one to the savings count and returns the new value
func (s *StatsService) Increment(ctx context.Context) (int64, error) {
	return s.stats.Increment(ctx, models.SavingsCountKey, s.baseline)
}
