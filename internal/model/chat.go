package model

import "time"

// Chat is a time-boxed support conversation. The unique index on user_id
// enforces "at most one chat per user" at the database level: expired rows
// are always swept before a new chat is created, so a duplicate insert can
// only mean a concurrent creation race, which collapses to re-reading the
// winner's row.
type Chat struct {
	ID             string    `gorm:"column:id;primaryKey"`
	UserID         string    `gorm:"column:user_id;uniqueIndex:idx_chats_user;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
	ExpiresAt      time.Time `gorm:"column:expires_at;index:idx_chats_expires;not null"`
	LastActivityAt time.Time `gorm:"column:last_activity_at;not null"`
}

func (Chat) TableName() string {
	return "chats"
}

// ChatMessage is append-only and deleted only as a cascade of chat expiry.
type ChatMessage struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ChatID    string    `gorm:"column:chat_id;index:idx_chat_messages_chat,priority:1;not null"`
	Sender    string    `gorm:"column:sender;not null"`
	Message   string    `gorm:"column:message;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_chat_messages_chat,priority:2;not null"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
