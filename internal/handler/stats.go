package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/service"
	ctxutil "github.com/toolflix/backend/pkg/context"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Visit bumps the global visit counter
func (h *StatsHandler) Visit(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Visit")

	total, err := h.statsService.RegisterVisit(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"visits": total,
	}))
}

// Visits reads the counter without incrementing it
func (h *StatsHandler) Visits(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Visits")

	total, err := h.statsService.Visits(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"visits": total,
	}))
}
