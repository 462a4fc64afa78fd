package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/config"
	"github.com/toolflix/backend/internal/handler"
	"github.com/toolflix/backend/internal/middleware"
)

type Router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	tokenHandler     *handler.TokenHandler
	chatHandler      *handler.ChatHandler
	chatAdminHandler *handler.ChatAdminHandler
	gameHandler      *handler.GameHandler
	statsHandler     *handler.StatsHandler
	healthHandler    *handler.HealthHandler

	jwtMw   *middleware.JWTMiddleware
	adminMw *middleware.AdminMiddleware
	Config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	token *handler.TokenHandler,
	chat *handler.ChatHandler,
	chatAdmin *handler.ChatAdminHandler,
	game *handler.GameHandler,
	stats *handler.StatsHandler,
	health *handler.HealthHandler,

	jwtMw *middleware.JWTMiddleware,
	adminMw *middleware.AdminMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      auth,
		userHandler:      user,
		tokenHandler:     token,
		chatHandler:      chat,
		chatAdminHandler: chatAdmin,
		gameHandler:      game,
		statsHandler:     stats,
		healthHandler:    health,

		jwtMw:   jwtMw,
		adminMw: adminMw,
		Config:  cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Check)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.tokenRoutes(v1)
			r.chatRoutes(v1)
			r.gameRoutes(v1)
			r.statsRoutes(v1)
		}
	}

	return router
}
