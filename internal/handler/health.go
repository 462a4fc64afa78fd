package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/pkg/redis"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHealthHandler(db *gorm.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Check reports service liveness and dependency status. The cache being
// down does not degrade overall health; the database being down does.
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "up"
	status := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	cacheStatus := "disabled"
	if h.cache.IsEnabled() {
		cacheStatus = "up"
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "down"
		}
	}

	body := constants.BuildOKResponse(gin.H{
		"service":   constants.AppName,
		"version":   constants.AppVersion,
		"database":  dbStatus,
		"cache":     cacheStatus,
		"timestamp": time.Now().UTC().UnixMilli(),
	})
	body[constants.ResponseFieldOK] = status == http.StatusOK

	c.JSON(status, body)
}
