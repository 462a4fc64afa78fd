package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/model"
	"github.com/toolflix/backend/internal/repository"
	"github.com/toolflix/backend/pkg/clock"
	"github.com/toolflix/backend/pkg/validation"
	"gorm.io/gorm"
)

type tokenFixture struct {
	tokens  *TokenService
	premium *PremiumService
	users   *UserService
	clock   *clock.Fake
	db      *gorm.DB
}

func newTokenFixture(t *testing.T) *tokenFixture {
	t.Helper()

	db := newTestDB(t)
	clk := newTestClock()
	ids := newTestIDs("u")

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	premiumRepo := repository.NewPremiumRepository(db)

	jwtSvc := newTestJWT("", clk)

	return &tokenFixture{
		tokens:  NewTokenService(tokenRepo, userRepo, clk),
		premium: NewPremiumService(premiumRepo, newDisabledCache()),
		users:   NewUserService(userRepo, jwtSvc, clk, ids),
		clock:   clk,
		db:      db,
	}
}

func registerUser(t *testing.T, userSvc *UserService, nick string) string {
	t.Helper()

	resp, err := userSvc.Register(context.Background(), &dto.RegisterRequest{
		Nick:     nick,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", nick, err)
	}
	return resp.User.ID
}

func TestIssueGeneratesWellFormedCode(t *testing.T) {
	f := newTokenFixture(t)

	resp, err := f.tokens.Issue(context.Background(), 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if !validation.IsTokenCode(resp.Token) {
		t.Errorf("code %q does not match the expected format", resp.Token)
	}

	wantExpiry := testStart.Add(30 * 24 * time.Hour).UnixMilli()
	if resp.ExpiresAt != wantExpiry {
		t.Errorf("default validity: got expiry %d, want %d", resp.ExpiresAt, wantExpiry)
	}
}

func TestRedeemGrantsPremium(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	issued, err := f.tokens.Issue(ctx, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := f.tokens.Redeem(ctx, issued.Token, userID); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	status, err := f.premium.Status(ctx, userID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Premium {
		t.Fatal("user should be premium after redemption")
	}
	if status.Since == nil || *status.Since != testStart.UnixMilli() {
		t.Errorf("since = %v, want %d", status.Since, testStart.UnixMilli())
	}
}

func TestRedeemIsIdempotentForSameUser(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")
	issued, _ := f.tokens.Issue(ctx, 0)

	if err := f.tokens.Redeem(ctx, issued.Token, userID); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if err := f.tokens.Redeem(ctx, issued.Token, userID); err != nil {
		t.Fatalf("repeat redeem by the same user should succeed: %v", err)
	}

	var grants int64
	if err := f.db.Model(&model.PremiumUser{}).Count(&grants).Error; err != nil {
		t.Fatalf("count grants: %v", err)
	}
	if grants != 1 {
		t.Errorf("grants = %d, want exactly 1", grants)
	}

	total, err := f.premium.Total(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
}

func TestRedeemRejectsSecondUser(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	alice := registerUser(t, f.users, "alice")
	bob := registerUser(t, f.users, "bob")

	issued, _ := f.tokens.Issue(ctx, 0)
	if err := f.tokens.Redeem(ctx, issued.Token, alice); err != nil {
		t.Fatalf("redeem by alice: %v", err)
	}

	err := f.tokens.Redeem(ctx, issued.Token, bob)
	if !errors.Is(err, apperrors.ErrRedeemTokenUsed) {
		t.Fatalf("redeem by bob: got %v, want TOKEN_JA_USADO", err)
	}

	status, _ := f.premium.Status(ctx, bob)
	if status.Premium {
		t.Error("bob must not gain premium from a used token")
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	err := f.tokens.Redeem(ctx, "TFX-AAAAAA-BBBBBB", userID)
	if !errors.Is(err, apperrors.ErrRedeemTokenNotFound) {
		t.Fatalf("got %v, want TOKEN_INEXISTENTE", err)
	}
}

func TestRedeemMalformedCode(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	// Arbitrary strings are indistinguishable from codes never issued
	for _, code := range []string{"not-a-code", "TFX-SHORT", "  hello world  "} {
		err := f.tokens.Redeem(ctx, code, userID)
		if !errors.Is(err, apperrors.ErrRedeemTokenNotFound) {
			t.Errorf("Redeem(%q): got %v, want TOKEN_INEXISTENTE", code, err)
		}
	}
}

func TestRedeemExpiredCode(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")

	issued, err := f.tokens.Issue(ctx, 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	f.clock.Advance(2 * 24 * time.Hour)

	if err := f.tokens.Redeem(ctx, issued.Token, userID); !errors.Is(err, apperrors.ErrRedeemTokenExpired) {
		t.Fatalf("got %v, want TOKEN_EXPIRADO", err)
	}

	status, _ := f.premium.Status(ctx, userID)
	if status.Premium {
		t.Error("expired token must not grant premium")
	}
}

func TestRedeemNormalizesCase(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	userID := registerUser(t, f.users, "alice")
	issued, _ := f.tokens.Issue(ctx, 0)

	padded := "  " + strings.ToLower(issued.Token) + " "
	if err := f.tokens.Redeem(ctx, padded, userID); err != nil {
		t.Fatalf("redeem with lowercase padded code: %v", err)
	}

	status, _ := f.premium.Status(ctx, userID)
	if !status.Premium {
		t.Error("normalized code should redeem")
	}
}

func TestRedeemUnknownUser(t *testing.T) {
	f := newTokenFixture(t)
	ctx := context.Background()

	issued, _ := f.tokens.Issue(ctx, 0)

	err := f.tokens.Redeem(ctx, issued.Token, "no-such-user")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tfx-abc123-def456", "TFX-ABC123-DEF456"},
		{"  TFX-ABC123-DEF456  ", "TFX-ABC123-DEF456"},
		{"TFX-ABC123-DEF456", "TFX-ABC123-DEF456"},
	}

	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
