package repository

import (
	"context"
	"time"

	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/model"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// ChatWithNick is the admin listing row: a chat joined with its owner's nick.
type ChatWithNick struct {
	ID             string    `gorm:"column:id"`
	UserID         string    `gorm:"column:user_id"`
	Nick           string    `gorm:"column:nick"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	LastActivityAt time.Time `gorm:"column:last_activity_at"`
}

// FindActiveByUser returns the user's non-expired chat, if any
func (r *ChatRepository) FindActiveByUser(ctx context.Context, userID string, now time.Time) (*model.Chat, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "FindActiveByUser")

	var chat model.Chat
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at >= ?", userID, now).
		First(&chat)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to find active chat").
				String("chat_user_id", userID).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &chat, nil
}

// GetByID returns a chat regardless of expiry state
func (r *ChatRepository) GetByID(ctx context.Context, chatID string) (*model.Chat, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var chat model.Chat
	result := r.db.WithContext(ctx).Where("id = ?", chatID).First(&chat)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get chat").
				String("chat_id", chatID).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &chat, nil
}

// Create inserts a new chat. A unique-index violation on user_id surfaces as
// gorm.ErrDuplicatedKey, which callers treat as "someone else created it
// first" and resolve by re-reading.
func (r *ChatRepository) Create(ctx context.Context, chat *model.Chat) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).Create(chat)
	if result.Error != nil {
		if result.Error == gorm.ErrDuplicatedKey {
			return result.Error
		}
		logger.ErrorWithContext(ctx, "Failed to create chat").
			String("chat_user_id", chat.UserID).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Chat created").
		String("chat_id", chat.ID).
		String("chat_user_id", chat.UserID).
		Time("expires_at", chat.ExpiresAt).
		Log()

	return nil
}

// DeleteExpired removes the messages of every expired chat, then the chats.
// Idempotent and safe to run concurrently: deleting nothing is not an error.
func (r *ChatRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "DeleteExpired")

	start := time.Now()

	expired := r.db.WithContext(ctx).Model(&model.Chat{}).
		Select("id").
		Where("expires_at < ?", now)

	msgs := r.db.WithContext(ctx).
		Where("chat_id IN (?)", expired).
		Delete(&model.ChatMessage{})
	if msgs.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete expired chat messages").
			Err(msgs.Error).
			Log()
		return 0, 0, msgs.Error
	}

	chats := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.Chat{})
	if chats.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete expired chats").
			Err(chats.Error).
			Log()
		return msgs.RowsAffected, 0, chats.Error
	}

	if chats.RowsAffected > 0 {
		logger.InfoWithContext(ctx, "Expired chats swept").
			Int64("chats_deleted", chats.RowsAffected).
			Int64("messages_deleted", msgs.RowsAffected).
			Duration(time.Since(start)).
			Log()
	}

	return msgs.RowsAffected, chats.RowsAffected, nil
}

// TouchActivity bumps last_activity_at, used to order the admin chat list
func (r *ChatRepository) TouchActivity(ctx context.Context, chatID string, at time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "TouchActivity")

	result := r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("id = ?", chatID).
		Update("last_activity_at", at)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to touch chat activity").
			String("chat_id", chatID).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// LastUserMessageAt returns the creation time of the most recent user-role
// message in the chat, or nil if there is none. Operator messages are
// ignored: only user messages are rate limited.
func (r *ChatRepository) LastUserMessageAt(ctx context.Context, chatID string) (*time.Time, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "LastUserMessageAt")

	var msg model.ChatMessage
	result := r.db.WithContext(ctx).
		Where("chat_id = ? AND sender = ?", chatID, constants.SenderUser).
		Order("created_at DESC").
		First(&msg)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.ErrorWithContext(ctx, "Failed to get last user message").
			String("chat_id", chatID).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &msg.CreatedAt, nil
}

// AppendMessage inserts a chat message
func (r *ChatRepository) AppendMessage(ctx context.Context, msg *model.ChatMessage) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "AppendMessage")

	result := r.db.WithContext(ctx).Create(msg)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to append chat message").
			String("chat_id", msg.ChatID).
			String("sender", msg.Sender).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// ListMessages returns the earliest messages of a chat ascending by creation
// time, bounded by limit
func (r *ChatRepository) ListMessages(ctx context.Context, chatID string, limit int) ([]model.ChatMessage, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListMessages")

	var msgs []model.ChatMessage
	result := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to list chat messages").
			String("chat_id", chatID).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return msgs, nil
}

// ListAll returns every chat joined with its owner's nick, most recently
// active first, ties broken by creation time descending
func (r *ChatRepository) ListAll(ctx context.Context) ([]ChatWithNick, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListAll")

	var rows []ChatWithNick
	result := r.db.WithContext(ctx).
		Table("chats").
		Select("chats.id, chats.user_id, COALESCE(users.nick, '') AS nick, chats.created_at, chats.expires_at, chats.last_activity_at").
		Joins("LEFT JOIN users ON users.id = chats.user_id").
		Order("chats.last_activity_at DESC, chats.created_at DESC").
		Scan(&rows)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to list chats").
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return rows, nil
}
