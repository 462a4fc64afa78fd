package repository

import (
	"context"

	"github.com/toolflix/backend/internal/model"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Increment bumps a counter with an atomic upsert and returns the new value
func (r *StatsRepository) Increment(ctx context.Context, key string) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Increment")

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": gorm.Expr("site_stats.value + 1")}),
	}).Create(&model.SiteStat{Key: key, Value: 1})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to increment counter").
			String("counter", key).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	return r.Get(ctx, key)
}

// Get reads a counter; a missing row reads as zero
func (r *StatsRepository) Get(ctx context.Context, key string) (int64, error) {
	var stat model.SiteStat
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&stat)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return 0, nil
		}
		logger.ErrorWithContext(ctx, "Failed to read counter").
			String("counter", key).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	return stat.Value, nil
}
