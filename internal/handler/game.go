package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/service"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
)

type GameHandler struct {
	gameService *service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// List returns the full catalog, newest first
func (h *GameHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "List")

	games, err := h.gameService.List(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"games": games,
	}))
}

// Upsert adds a catalog entry or updates the one sharing its link (privileged)
func (h *GameHandler) Upsert(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Upsert")

	var req dto.UpsertGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	game, err := h.gameService.Upsert(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Game upsert rejected").
			String("link", req.Link).
			Err(err).
			Log()
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildOKResponse(gin.H{
		"game": game,
	}))
}

// Delete removes a catalog entry by link (privileged)
func (h *GameHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Delete")

	var req dto.DeleteGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	if err := h.gameService.Delete(ctx, req.Link); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(nil))
}

// Clear empties the catalog (privileged)
func (h *GameHandler) Clear(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Clear")

	if err := h.gameService.Clear(ctx); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(nil))
}
