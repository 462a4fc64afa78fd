package model

import "time"

// Token is a one-time redemption code granting premium entitlement.
// It transitions from unredeemed to redeemed exactly once (UsedBy set)
// and is never deleted afterwards.
type Token struct {
	Code      string     `gorm:"column:token;primaryKey"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null"`
	UsedBy    *string    `gorm:"column:used_by"`
	UsedAt    *time.Time `gorm:"column:used_at"`
}

func (Token) TableName() string {
	return "tokens"
}
