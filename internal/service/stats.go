package service

import (
	"context"

	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/repository"
	ctxutil "github.com/toolflix/backend/pkg/context"
)

const visitsCounterKey = "visits"

type StatsService struct {
	statsRepo *repository.StatsRepository
}

func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// RegisterVisit bumps the global visit counter and returns the new total.
func (s *StatsService) RegisterVisit(ctx context.Context) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "RegisterVisit")

	total, err := s.statsRepo.Increment(ctx, visitsCounterKey)
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return total, nil
}

// Visits reads the counter without incrementing it.
func (s *StatsService) Visits(ctx context.Context) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Visits")

	total, err := s.statsRepo.Get(ctx, visitsCounterKey)
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return total, nil
}
