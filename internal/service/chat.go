package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/model"
	"github.com/toolflix/backend/internal/repository"
	"github.com/toolflix/backend/pkg/clock"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/id"
	"github.com/toolflix/backend/pkg/logger"
	"gorm.io/gorm"
)

// ChatStore is the persistence surface the chat service works against.
// *repository.ChatRepository is the production implementation.
type ChatStore interface {
	FindActiveByUser(ctx context.Context, userID string, now time.Time) (*model.Chat, error)
	GetByID(ctx context.Context, chatID string) (*model.Chat, error)
	Create(ctx context.Context, chat *model.Chat) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, int64, error)
	TouchActivity(ctx context.Context, chatID string, at time.Time) error
	LastUserMessageAt(ctx context.Context, chatID string) (*time.Time, error)
	AppendMessage(ctx context.Context, msg *model.ChatMessage) error
	ListMessages(ctx context.Context, chatID string, limit int) ([]model.ChatMessage, error)
	ListAll(ctx context.Context) ([]repository.ChatWithNick, error)
}

// ChatService manages the ephemeral support chats: one live chat per user,
// a fixed lifetime from creation, and everything deleted at expiry.
type ChatService struct {
	chatRepo ChatStore
	clock    clock.Clock
	idGen    id.Generator
}

func NewChatService(chatRepo ChatStore, clk clock.Clock, idGen id.Generator) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		clock:    clk,
		idGen:    idGen,
	}
}

// GetOrCreateActiveChat returns the user's live chat, creating one when none
// exists. Expired chats are swept first so the unique index on user_id only
// ever trips on a genuine concurrent creation, which is resolved by
// re-reading the winner's row.
func (s *ChatService) GetOrCreateActiveChat(ctx context.Context, userID string) (*model.Chat, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetOrCreateActiveChat")

	now := s.clock.Now()

	if _, _, err := s.chatRepo.DeleteExpired(ctx, now); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	chat, err := s.chatRepo.FindActiveByUser(ctx, userID, now)
	if err == nil {
		return chat, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	chat = &model.Chat{
		ID:             s.idGen.NewID(),
		UserID:         userID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(constants.ChatTTL),
		LastActivityAt: now,
	}

	if err := s.chatRepo.Create(ctx, chat); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return s.chatRepo.FindActiveByUser(ctx, userID, now)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return chat, nil
}

// SendUserMessage appends a user message to their live chat, creating the
// chat if needed, and returns the chat it landed in. User messages are
// throttled: one per interval, with the remaining wait surfaced to the
// client in milliseconds.
func (s *ChatService) SendUserMessage(ctx context.Context, userID, message string) (*dto.ChatResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SendUserMessage")

	message, err := validateMessage(message)
	if err != nil {
		return nil, err
	}

	chat, err := s.GetOrCreateActiveChat(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	last, err := s.chatRepo.LastUserMessageAt(ctx, chat.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if last != nil {
		elapsed := now.Sub(*last)
		if elapsed < constants.ChatMessageMinInterval {
			wait := constants.ChatMessageMinInterval - elapsed
			logger.WarnWithContext(ctx, "Chat message throttled").
				String("chat_id", chat.ID).
				Duration(wait).
				Log()
			return nil, apperrors.ErrRateLimited.WithMeta(map[string]any{
				"waitMs": wait.Milliseconds(),
			})
		}
	}

	if _, err := s.append(ctx, chat.ID, constants.SenderUser, message, now); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		ChatID:    chat.ID,
		ExpiresAt: chat.ExpiresAt.UnixMilli(),
	}, nil
}

// SendOperatorMessage appends an operator reply to an existing chat.
// Operators address chats by id and are not throttled.
func (s *ChatService) SendOperatorMessage(ctx context.Context, chatID, message string) (*dto.ChatMessageResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SendOperatorMessage")

	message, err := validateMessage(message)
	if err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	now := s.clock.Now()
	if chat.ExpiresAt.Before(now) {
		return nil, apperrors.ErrChatExpired
	}

	return s.append(ctx, chat.ID, constants.SenderOperator, message, now)
}

// Messages returns the user's live chat and its transcript in send order,
// creating the chat when none exists.
func (s *ChatService) Messages(ctx context.Context, userID string) (*dto.ChatResponse, []dto.ChatMessageResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Messages")

	chat, err := s.GetOrCreateActiveChat(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.chatRepo.ListMessages(ctx, chat.ID, constants.ChatMessageListLimit)
	if err != nil {
		return nil, nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := make([]dto.ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, toChatMessageResponse(&msgs[i]))
	}

	return &dto.ChatResponse{
		ChatID:    chat.ID,
		ExpiresAt: chat.ExpiresAt.UnixMilli(),
	}, resp, nil
}

// SweepExpired deletes every expired chat and its messages, returning how
// many of each were removed.
func (s *ChatService) SweepExpired(ctx context.Context) (int64, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SweepExpired")

	msgs, chats, err := s.chatRepo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return msgs, chats, nil
}

// ListChats returns every live chat with its owner's nick for the operator
// dashboard, most recently active first. Expired chats are swept before
// listing so the dashboard never shows a conversation past its lifetime.
func (s *ChatService) ListChats(ctx context.Context) ([]dto.ChatSummaryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListChats")

	if _, _, err := s.chatRepo.DeleteExpired(ctx, s.clock.Now()); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	rows, err := s.chatRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := make([]dto.ChatSummaryResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, dto.ChatSummaryResponse{
			ID:             row.ID,
			UserID:         row.UserID,
			Nick:           row.Nick,
			CreatedAt:      row.CreatedAt.UnixMilli(),
			ExpiresAt:      row.ExpiresAt.UnixMilli(),
			LastActivityAt: row.LastActivityAt.UnixMilli(),
		})
	}

	return resp, nil
}

// ChatMessages returns the transcript of any chat by id, expired or not.
func (s *ChatService) ChatMessages(ctx context.Context, chatID string) ([]dto.ChatMessageResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ChatMessages")

	if _, err := s.chatRepo.GetByID(ctx, chatID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	msgs, err := s.chatRepo.ListMessages(ctx, chatID, constants.ChatMessageListLimit)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := make([]dto.ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, toChatMessageResponse(&msgs[i]))
	}

	return resp, nil
}

func (s *ChatService) append(ctx context.Context, chatID, sender, message string, at time.Time) (*dto.ChatMessageResponse, error) {
	msg := &model.ChatMessage{
		ID:        s.idGen.NewID(),
		ChatID:    chatID,
		Sender:    sender,
		Message:   message,
		CreatedAt: at,
	}

	if err := s.chatRepo.AppendMessage(ctx, msg); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.chatRepo.TouchActivity(ctx, chatID, at); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := toChatMessageResponse(msg)
	return &resp, nil
}

func validateMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > constants.ChatMessageMaxLength {
		return "", apperrors.ErrMessageTooLong
	}
	return message, nil
}

func toChatMessageResponse(msg *model.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Sender:    msg.Sender,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt.UnixMilli(),
	}
}
