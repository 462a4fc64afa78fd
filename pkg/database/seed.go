package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/toolflix/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return seedSiteStats(db)
}

// seedSiteStats guarantees the global visit counter row exists
func seedSiteStats(db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.SiteStat{Key: "visits", Value: 0}).Error
}

// SeedMasterUser creates the master account if it does not exist yet.
// Called only when MASTER_NICK and MASTER_PASSWORD are both configured.
func SeedMasterUser(db *gorm.DB, nick, password string) error {
	var existing model.User
	result := db.Where("nick = ?", nick).First(&existing)

	if result.Error == nil {
		// Master account already exists, skip seeding
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		ID:           uuid.NewString(),
		Nick:         nick,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	return db.Create(&user).Error
}
