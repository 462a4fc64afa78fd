package model

import "time"

// PremiumUser records that a user has redeemed at least one token.
// One row per user; Since is the first grant and is never overwritten.
// Grants do not expire or get revoked.
type PremiumUser struct {
	UserID string    `gorm:"column:user_id;primaryKey"`
	Since  time.Time `gorm:"column:since;not null"`
}

func (PremiumUser) TableName() string {
	return "premium_users"
}
