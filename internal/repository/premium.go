package repository

import (
	"context"

	"github.com/toolflix/backend/internal/model"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"gorm.io/gorm"
)

type PremiumRepository struct {
	db *gorm.DB
}

func NewPremiumRepository(db *gorm.DB) *PremiumRepository {
	return &PremiumRepository{db: db}
}

// Get returns the premium grant for a user, gorm.ErrRecordNotFound if none
func (r *PremiumRepository) Get(ctx context.Context, userID string) (*model.PremiumUser, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Get")

	var grant model.PremiumUser
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&grant)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get premium grant").
				String("premium_user_id", userID).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &grant, nil
}

// Count returns the number of premium grants, unbounded by time
func (r *PremiumRepository) Count(ctx context.Context) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Count")

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.PremiumUser{}).Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count premium grants").
			Err(err).
			Log()
		return 0, err
	}

	return total, nil
}
