package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/toolflix/backend/config"
	"github.com/toolflix/backend/internal/handler"
	"github.com/toolflix/backend/internal/middleware"
	"github.com/toolflix/backend/internal/repository"
	"github.com/toolflix/backend/internal/router"
	"github.com/toolflix/backend/internal/service"
	"github.com/toolflix/backend/pkg/clock"
	"github.com/toolflix/backend/pkg/database"
	"github.com/toolflix/backend/pkg/id"
	"github.com/toolflix/backend/pkg/logger"
	"github.com/toolflix/backend/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if err := database.Seed(db); err != nil {
		// Seed data may already exist
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	if config.Auth.MasterNick != "" && config.Auth.MasterPassword != "" {
		if err := database.SeedMasterUser(db, config.Auth.MasterNick, config.Auth.MasterPassword); err != nil {
			logger.GetLogger().Error("Failed to seed master user", zap.Error(err))
		}
	}

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	premiumRepo := repository.NewPremiumRepository(db)
	chatRepo := repository.NewChatRepository(db)
	gameRepo := repository.NewGameRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	clk := clock.New()
	idGen := id.NewGenerator()

	cacheService := service.NewCacheService(redisClient)
	jwtService := service.NewJWTService(config, clk)
	userService := service.NewUserService(userRepo, jwtService, clk, idGen)
	tokenService := service.NewTokenService(tokenRepo, userRepo, clk)
	premiumService := service.NewPremiumService(premiumRepo, cacheService)
	chatService := service.NewChatService(chatRepo, clk, idGen)
	gameService := service.NewGameService(gameRepo, cacheService, clk, idGen)
	statsService := service.NewStatsService(statsRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	tokenHandler := handler.NewTokenHandler(tokenService, premiumService)
	chatHandler := handler.NewChatHandler(chatService)
	chatAdminHandler := handler.NewChatAdminHandler(chatService)
	gameHandler := handler.NewGameHandler(gameService)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Middleware
	jwtMiddleware := middleware.NewJWTMiddleware(jwtService)
	adminMiddleware := middleware.NewAdminMiddleware(config)

	engine := router.NewRouter(
		authHandler,
		userHandler,
		tokenHandler,
		chatHandler,
		chatAdminHandler,
		gameHandler,
		statsHandler,
		healthHandler,

		jwtMiddleware,
		adminMiddleware,
		config,
	).SetupRoutes()

	// Background sweep so expired chats disappear even when nobody is
	// using the chat endpoints.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepExpiredChats(sweepCtx, chatService)

	srv := &http.Server{
		Addr:    ":" + config.App.Port,
		Handler: engine,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Forced server shutdown", zap.Error(err))
	}
}

func sweepExpiredChats(ctx context.Context, chatService *service.ChatService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := chatService.SweepExpired(ctx); err != nil {
				logger.GetLogger().Error("Chat sweep failed", zap.Error(err))
			}
		}
	}
}
