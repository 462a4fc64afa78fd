package service

import (
	"testing"
	"time"

	"github.com/toolflix/backend/config"
	"github.com/toolflix/backend/pkg/clock"
	"github.com/toolflix/backend/pkg/database"
	"github.com/toolflix/backend/pkg/id"
	"github.com/toolflix/backend/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testStart is an arbitrary fixed instant all fake clocks begin at.
var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestDB opens an isolated in-memory database with the same error
// translation the production connection uses, so unique violations surface
// as gorm.ErrDuplicatedKey in tests too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A fresh connection would see a fresh empty memory database
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// newDisabledCache returns a cache layer whose reads always miss.
func newDisabledCache() *CacheService {
	return NewCacheService(redis.NewClient(redis.Config{Enabled: false}, zap.NewNop()))
}

func newTestClock() *clock.Fake {
	return clock.NewFake(testStart)
}

func newTestIDs(prefix string) *id.Sequence {
	return &id.Sequence{Prefix: prefix}
}

func newTestJWT(masterNick string, clk clock.Clock) *JWTService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationTime = 30 * 24 * time.Hour
	cfg.Auth.MasterNick = masterNick
	return NewJWTService(cfg, clk)
}
