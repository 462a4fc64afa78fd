package repository

import (
	"context"
	"time"

	"github.com/toolflix/backend/internal/model"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(token)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create token").
			String("token", token.Code).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Token created").
		String("token", token.Code).
		Time("expires_at", token.ExpiresAt).
		Duration(duration).
		Log()

	return nil
}

// GetByCode looks up a token by its already-normalized code
func (r *TokenRepository) GetByCode(ctx context.Context, code string) (*model.Token, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByCode")

	var token model.Token
	result := r.db.WithContext(ctx).Where("token = ?", code).First(&token)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get token by code").
				String("token", code).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &token, nil
}

// Redeem marks the token as used by userID and upserts the premium grant in
// a single transaction, so a token is never left "used" without its grant.
// The grant insert is ON CONFLICT DO NOTHING: the first since timestamp wins
// and a repeated redemption by the same user stays idempotent.
func (r *TokenRepository) Redeem(ctx context.Context, code, userID string, at time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Redeem")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Token{}).
			Where("token = ?", code).
			Updates(map[string]interface{}{
				"used_by": userID,
				"used_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.PremiumUser{UserID: userID, Since: at}).Error
	})
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to redeem token").
			String("token", code).
			String("redeemer_id", userID).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Token redeemed").
		String("token", code).
		String("redeemer_id", userID).
		Duration(duration).
		Log()

	return nil
}
