package database

import (
	"github.com/toolflix/backend/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Token{},
		&model.PremiumUser{},
		&model.Chat{},
		&model.ChatMessage{},
		&model.Game{},
		&model.SiteStat{},
	)
}
