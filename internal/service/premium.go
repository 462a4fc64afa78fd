package service

import (
	"context"

	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/repository"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"gorm.io/gorm"
)

type PremiumService struct {
	premiumRepo *repository.PremiumRepository
	cache       *CacheService
}

func NewPremiumService(premiumRepo *repository.PremiumRepository, cache *CacheService) *PremiumService {
	return &PremiumService{
		premiumRepo: premiumRepo,
		cache:       cache,
	}
}

// Status reports whether the user holds a premium grant and, if so, since
// when. An unknown user simply reads as non-premium.
func (s *PremiumService) Status(ctx context.Context, userID string) (*dto.PremiumStatusResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Status")

	grant, err := s.premiumRepo.Get(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &dto.PremiumStatusResponse{Premium: false}, nil
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	since := grant.Since.UnixMilli()
	return &dto.PremiumStatusResponse{Premium: true, Since: &since}, nil
}

// Total counts premium grants, served from cache when warm.
func (s *PremiumService) Total(ctx context.Context) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Total")

	var cached int64
	if s.cache.GetJSON(ctx, constants.CacheKeyPremiumTotal, &cached) {
		return cached, nil
	}

	total, err := s.premiumRepo.Count(ctx)
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.SetJSON(ctx, constants.CacheKeyPremiumTotal, total, premiumTotalCacheTTL)
	return total, nil
}
