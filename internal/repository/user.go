package repository

import (
	"context"
	"time"

	"github.com/toolflix/backend/internal/model"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("nick", user.Nick).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created").
		String("nick", user.Nick).
		String("created_user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by ID").
				String("lookup_user_id", id).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetByNick finds a user by its unique display name
func (r *UserRepository) GetByNick(ctx context.Context, nick string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByNick")

	var user model.User
	result := r.db.WithContext(ctx).Where("nick = ?", nick).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by nick").
				String("nick", nick).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &user, nil
}

// AddXP increments the experience counter atomically and returns the new total
func (r *UserRepository) AddXP(ctx context.Context, id string, amount int64) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "AddXP")

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("xp + ?", amount))
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to add xp").
			Int64("amount", amount).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var user model.User
	if err := r.db.WithContext(ctx).Select("xp").Where("id = ?", id).First(&user).Error; err != nil {
		return 0, err
	}

	return user.XP, nil
}
