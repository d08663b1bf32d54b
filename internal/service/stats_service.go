package service

import "context"

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type statsLedger interface {
	counter
	PlatformTotalStars(ctx context.Context) (int64, error)
}

// PlatformStats is the global dashboard snapshot. TotalStars is the sum of
// stars across every rating on the platform.
type PlatformStats struct {
	TotalUsers   int64
	TotalStores  int64
	TotalRatings int64
	TotalStars   int64
}

// StatsService computes platform-wide dashboard metrics.
type StatsService interface {
	PlatformStats(ctx context.Context) (PlatformStats, error)
}

type statsService struct {
	users   counter
	stores  counter
	ratings statsLedger
}

// NewStatsService creates a new stats service.
func NewStatsService(users, stores counter, ratings statsLedger) StatsService {
	return &statsService{users: users, stores: stores, ratings: ratings}
}

// PlatformStats recomputes every metric from current state; nothing is cached.
func (s *statsService) PlatformStats(ctx context.Context) (PlatformStats, error) {
	var stats PlatformStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return PlatformStats{}, err
	}
	if stats.TotalStores, err = s.stores.Count(ctx); err != nil {
		return PlatformStats{}, err
	}
	if stats.TotalRatings, err = s.ratings.Count(ctx); err != nil {
		return PlatformStats{}, err
	}
	if stats.TotalStars, err = s.ratings.PlatformTotalStars(ctx); err != nil {
		return PlatformStats{}, err
	}
	return stats, nil
}
