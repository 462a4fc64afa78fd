package model

import "time"

// User is an account row. Chats and premium grants reference its id weakly;
// there is no FK cascade from users to either table.
type User struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Nick         string    `gorm:"column:nick;unique;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	XP           int64     `gorm:"column:xp;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (User) TableName() string {
	return "users"
}
