package model

import "time"

// Game is a catalog entry. Link is the natural key used by the admin
// upsert; premium entries are gated client-side by premium status.
type Game struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Link      string    `gorm:"column:link;uniqueIndex:idx_games_link;not null"`
	Image     string    `gorm:"column:image;default:''"`
	Category  string    `gorm:"column:category;default:''"`
	Premium   bool      `gorm:"column:premium;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (Game) TableName() string {
	return "games"
}
