package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/toolflix/backend/internal/constants"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/model"
	"github.com/toolflix/backend/internal/repository"
	"github.com/toolflix/backend/pkg/clock"
	"gorm.io/gorm"
)

type chatFixture struct {
	chats *ChatService
	users *UserService
	clock *clock.Fake
	db    *gorm.DB
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	db := newTestDB(t)
	clk := newTestClock()

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)

	jwtSvc := newTestJWT("", clk)

	return &chatFixture{
		chats: NewChatService(chatRepo, clk, newTestIDs("chat")),
		users: NewUserService(userRepo, jwtSvc, clk, newTestIDs("u")),
		clock: clk,
		db:    db,
	}
}

func TestGetOrCreateActiveChat(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	first, err := f.chats.GetOrCreateActiveChat(ctx, userID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	wantExpiry := testStart.Add(constants.ChatTTL)
	if !first.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expires_at = %v, want %v", first.ExpiresAt, wantExpiry)
	}

	// A second call within the lifetime returns the same chat
	second, err := f.chats.GetOrCreateActiveChat(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("got chat %s, want existing chat %s", second.ID, first.ID)
	}
}

func TestChatExpiryCreatesFreshChat(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	first, err := f.chats.GetOrCreateActiveChat(ctx, userID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.chats.SendUserMessage(ctx, userID, "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}

	f.clock.Advance(constants.ChatTTL + time.Millisecond)

	second, err := f.chats.GetOrCreateActiveChat(ctx, userID)
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expired chat must be replaced, not reused")
	}

	// The old chat and its transcript are gone
	var chatCount, msgCount int64
	f.db.Model(&model.Chat{}).Count(&chatCount)
	f.db.Model(&model.ChatMessage{}).Count(&msgCount)
	if chatCount != 1 {
		t.Errorf("chats = %d, want 1", chatCount)
	}
	if msgCount != 0 {
		t.Errorf("messages = %d, want 0 after expiry sweep", msgCount)
	}
}

func TestSendUserMessageThrottled(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	if _, err := f.chats.SendUserMessage(ctx, userID, "first"); err != nil {
		t.Fatalf("first send: %v", err)
	}

	f.clock.Advance(10 * time.Second)

	_, err := f.chats.SendUserMessage(ctx, userID, "too soon")
	if !errors.Is(err, apperrors.ErrRateLimited) {
		t.Fatalf("got %v, want RATE_LIMITED", err)
	}

	domainErr := apperrors.GetDomainError(err)
	waitMs, ok := domainErr.Meta["waitMs"].(int64)
	if !ok || waitMs <= 0 {
		t.Errorf("waitMs = %v, want a positive remaining wait", domainErr.Meta["waitMs"])
	}
	if waitMs != (20 * time.Second).Milliseconds() {
		t.Errorf("waitMs = %d, want %d", waitMs, (20 * time.Second).Milliseconds())
	}

	// After the interval passes the next message goes through
	f.clock.Advance(constants.ChatMessageMinInterval)
	if _, err := f.chats.SendUserMessage(ctx, userID, "second"); err != nil {
		t.Fatalf("send after interval: %v", err)
	}
}

func TestOperatorMessagesAreNotThrottled(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	chat, err := f.chats.GetOrCreateActiveChat(ctx, userID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := f.chats.SendOperatorMessage(ctx, chat.ID, "reply"); err != nil {
			t.Fatalf("operator send %d: %v", i, err)
		}
	}

	// Operator replies do not reset the user's throttle window either
	if _, err := f.chats.SendUserMessage(ctx, userID, "question"); err != nil {
		t.Fatalf("user send: %v", err)
	}
}

func TestTranscriptOrdering(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	if _, err := f.chats.SendUserMessage(ctx, userID, "hi"); err != nil {
		t.Fatalf("user send: %v", err)
	}

	chat, _ := f.chats.GetOrCreateActiveChat(ctx, userID)
	f.clock.Advance(time.Second)
	if _, err := f.chats.SendOperatorMessage(ctx, chat.ID, "hello"); err != nil {
		t.Fatalf("operator send: %v", err)
	}

	info, msgs, err := f.chats.Messages(ctx, userID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if info.ChatID != chat.ID {
		t.Errorf("chat id = %s, want %s", info.ChatID, chat.ID)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0].Sender != constants.SenderUser || msgs[0].Message != "hi" {
		t.Errorf("first message = %+v, want user 'hi'", msgs[0])
	}
	if msgs[1].Sender != constants.SenderOperator || msgs[1].Message != "hello" {
		t.Errorf("second message = %+v, want operator 'hello'", msgs[1])
	}
	if msgs[0].CreatedAt > msgs[1].CreatedAt {
		t.Error("messages out of order")
	}
}

func TestOperatorMessageOnMissingChat(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.chats.SendOperatorMessage(context.Background(), "no-such-chat", "hello")
	if !errors.Is(err, apperrors.ErrChatNotFound) {
		t.Fatalf("got %v, want CHAT_NOT_FOUND", err)
	}
}

func TestOperatorMessageOnExpiredChat(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")
	chat, _ := f.chats.GetOrCreateActiveChat(ctx, userID)

	f.clock.Advance(constants.ChatTTL + time.Millisecond)

	_, err := f.chats.SendOperatorMessage(ctx, chat.ID, "late reply")
	if !errors.Is(err, apperrors.ErrChatExpired) {
		t.Fatalf("got %v, want CHAT_EXPIRED", err)
	}
}

func TestMessageValidation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	tests := []struct {
		name    string
		message string
		wantErr *apperrors.DomainError
	}{
		{"empty", "", apperrors.ErrEmptyMessage},
		{"whitespace only", "   \t  ", apperrors.ErrEmptyMessage},
		{"too long", strings.Repeat("x", constants.ChatMessageMaxLength+1), apperrors.ErrMessageTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.chats.SendUserMessage(ctx, userID, tt.message)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %s", err, tt.wantErr.Code)
			}
		})
	}

	// A message at exactly the limit is accepted
	if _, err := f.chats.SendUserMessage(ctx, userID, strings.Repeat("x", constants.ChatMessageMaxLength)); err != nil {
		t.Errorf("message at the limit rejected: %v", err)
	}
}

func TestSweepExpired(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	alice := registerUser(t, f.users, "alice")
	bob := registerUser(t, f.users, "bob")

	if _, err := f.chats.SendUserMessage(ctx, alice, "old"); err != nil {
		t.Fatalf("alice send: %v", err)
	}

	f.clock.Advance(constants.ChatTTL - time.Minute)

	if _, err := f.chats.SendUserMessage(ctx, bob, "recent"); err != nil {
		t.Fatalf("bob send: %v", err)
	}

	f.clock.Advance(2 * time.Minute)

	msgs, chats, err := f.chats.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if chats != 1 || msgs != 1 {
		t.Errorf("swept %d chats / %d msgs, want 1 / 1", chats, msgs)
	}

	// Bob's chat survives with its transcript intact
	_, remaining, err := f.chats.Messages(ctx, bob)
	if err != nil {
		t.Fatalf("bob messages: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Message != "recent" {
		t.Errorf("bob transcript = %+v, want the single recent message", remaining)
	}
}

func TestListChatsOrdering(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	alice := registerUser(t, f.users, "alice")
	bob := registerUser(t, f.users, "bob")

	if _, err := f.chats.SendUserMessage(ctx, alice, "first"); err != nil {
		t.Fatalf("alice send: %v", err)
	}

	f.clock.Advance(time.Minute)

	if _, err := f.chats.SendUserMessage(ctx, bob, "second"); err != nil {
		t.Fatalf("bob send: %v", err)
	}

	list, err := f.chats.ListChats(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].Nick != "bob" || list[1].Nick != "alice" {
		t.Errorf("order = [%s, %s], want most recently active first", list[0].Nick, list[1].Nick)
	}
}

func TestListChatsExcludesExpired(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	alice := registerUser(t, f.users, "alice")
	bob := registerUser(t, f.users, "bob")

	if _, err := f.chats.SendUserMessage(ctx, alice, "old"); err != nil {
		t.Fatalf("alice send: %v", err)
	}

	f.clock.Advance(constants.ChatTTL - time.Minute)

	if _, err := f.chats.SendUserMessage(ctx, bob, "recent"); err != nil {
		t.Fatalf("bob send: %v", err)
	}

	// Past alice's lifetime but well before the next background sweep
	f.clock.Advance(2 * time.Minute)

	list, err := f.chats.ListChats(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want only the live chat", len(list))
	}
	if list[0].Nick != "bob" {
		t.Errorf("nick = %s, want bob", list[0].Nick)
	}

	// Listing also removed the expired chat's transcript
	var msgCount int64
	f.db.Model(&model.ChatMessage{}).Count(&msgCount)
	if msgCount != 1 {
		t.Errorf("messages = %d, want 1 after listing swept the expired chat", msgCount)
	}
}

// racingChatStore makes FindActiveByUser miss once, reproducing the window
// where two requests both see no live chat and race to create one.
type racingChatStore struct {
	*repository.ChatRepository
	missNext bool
}

func (s *racingChatStore) FindActiveByUser(ctx context.Context, userID string, now time.Time) (*model.Chat, error) {
	if s.missNext {
		s.missNext = false
		return nil, gorm.ErrRecordNotFound
	}
	return s.ChatRepository.FindActiveByUser(ctx, userID, now)
}

func TestGetOrCreateActiveChatCollapsesCreationRace(t *testing.T) {
	db := newTestDB(t)
	clk := newTestClock()
	ctx := context.Background()

	repo := repository.NewChatRepository(db)
	store := &racingChatStore{ChatRepository: repo}
	chats := NewChatService(store, clk, newTestIDs("chat"))

	now := clk.Now()
	winner := &model.Chat{
		ID:             "chat-winner",
		UserID:         "u-1",
		CreatedAt:      now,
		ExpiresAt:      now.Add(constants.ChatTTL),
		LastActivityAt: now,
	}
	if err := repo.Create(ctx, winner); err != nil {
		t.Fatalf("seed winner: %v", err)
	}

	// A second live chat for the same user trips the unique index
	loser := &model.Chat{
		ID:             "chat-loser",
		UserID:         "u-1",
		CreatedAt:      now,
		ExpiresAt:      now.Add(constants.ChatTTL),
		LastActivityAt: now,
	}
	if err := repo.Create(ctx, loser); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate create: got %v, want gorm.ErrDuplicatedKey", err)
	}

	// The service loses the race and must return the winner's row
	store.missNext = true
	got, err := chats.GetOrCreateActiveChat(ctx, "u-1")
	if err != nil {
		t.Fatalf("get or create after lost race: %v", err)
	}
	if got.ID != winner.ID {
		t.Errorf("chat id = %s, want the winner %s", got.ID, winner.ID)
	}

	var chatCount int64
	db.Model(&model.Chat{}).Count(&chatCount)
	if chatCount != 1 {
		t.Errorf("chats = %d, want 1", chatCount)
	}
}
