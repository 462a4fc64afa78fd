package service

import (
	"context"
	"strings"

	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/model"
	"github.com/toolflix/backend/internal/repository"
	"github.com/toolflix/backend/pkg/clock"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/id"
)

type GameService struct {
	gameRepo *repository.GameRepository
	cache    *CacheService
	clock    clock.Clock
	idGen    id.Generator
}

func NewGameService(gameRepo *repository.GameRepository, cache *CacheService, clk clock.Clock, idGen id.Generator) *GameService {
	return &GameService{
		gameRepo: gameRepo,
		cache:    cache,
		clock:    clk,
		idGen:    idGen,
	}
}

// List returns the catalog newest first, served from cache when warm.
func (s *GameService) List(ctx context.Context) ([]dto.GameResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "List")

	var cached []dto.GameResponse
	if s.cache.GetJSON(ctx, constants.CacheKeyGames, &cached) {
		return cached, nil
	}

	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := make([]dto.GameResponse, 0, len(games))
	for i := range games {
		resp = append(resp, toGameResponse(&games[i]))
	}

	s.cache.SetJSON(ctx, constants.CacheKeyGames, resp, gamesCacheTTL)
	return resp, nil
}

// Upsert adds a catalog entry or updates the existing one with the same
// link, then invalidates the catalog cache.
func (s *GameService) Upsert(ctx context.Context, req *dto.UpsertGameRequest) (*dto.GameResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Upsert")

	title := strings.TrimSpace(req.Title)
	link := strings.TrimSpace(req.Link)
	if title == "" || link == "" {
		return nil, apperrors.ErrGameInvalid
	}

	game := &model.Game{
		ID:        s.idGen.NewID(),
		Title:     title,
		Link:      link,
		Image:     strings.TrimSpace(req.Image),
		Category:  strings.TrimSpace(req.Category),
		Premium:   req.Premium,
		CreatedAt: s.clock.Now(),
	}

	if err := s.gameRepo.Upsert(ctx, game); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Invalidate(ctx, constants.CacheKeyGames)

	resp := toGameResponse(game)
	return &resp, nil
}

// Delete removes a catalog entry by link. Deleting a missing link is not an
// error, matching the idempotent admin workflow.
func (s *GameService) Delete(ctx context.Context, link string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Delete")

	link = strings.TrimSpace(link)
	if link == "" {
		return apperrors.ErrInvalidInput
	}

	if err := s.gameRepo.DeleteByLink(ctx, link); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Invalidate(ctx, constants.CacheKeyGames)
	return nil
}

// Clear empties the whole catalog.
func (s *GameService) Clear(ctx context.Context) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Clear")

	if err := s.gameRepo.Clear(ctx); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Invalidate(ctx, constants.CacheKeyGames)
	return nil
}

func toGameResponse(game *model.Game) dto.GameResponse {
	return dto.GameResponse{
		ID:        game.ID,
		Title:     game.Title,
		Link:      game.Link,
		Image:     game.Image,
		Category:  game.Category,
		Premium:   game.Premium,
		CreatedAt: game.CreatedAt.UnixMilli(),
	}
}
