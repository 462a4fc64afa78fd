package repository

import (
	"context"

	"github.com/toolflix/backend/internal/model"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// List returns the whole catalog, newest first
func (r *GameRepository) List(ctx context.Context) ([]model.Game, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "List")

	var games []model.Game
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&games)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to list games").
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return games, nil
}

// Upsert inserts the game or, when the link already exists, updates its
// title, image, category and premium flag in place
func (r *GameRepository) Upsert(ctx context.Context, game *model.Game) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Upsert")

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "link"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "image", "category", "premium"}),
	}).Create(game)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to upsert game").
			String("link", game.Link).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Game upserted").
		String("link", game.Link).
		String("title", game.Title).
		Log()

	return nil
}

// DeleteByLink removes a game by its natural key
func (r *GameRepository) DeleteByLink(ctx context.Context, link string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "DeleteByLink")

	result := r.db.WithContext(ctx).Where("link = ?", link).Delete(&model.Game{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete game").
			String("link", link).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// Clear empties the catalog
func (r *GameRepository) Clear(ctx context.Context) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Clear")

	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Game{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to clear games").
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Game catalog cleared").
		Int64("deleted", result.RowsAffected).
		Log()

	return nil
}
