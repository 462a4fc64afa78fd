package service

import (
	"context"
	"errors"
	"testing"

	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/repository"
)

func newUserService(t *testing.T, masterNick string) *UserService {
	t.Helper()

	db := newTestDB(t)
	clk := newTestClock()

	return NewUserService(
		repository.NewUserRepository(db),
		newTestJWT(masterNick, clk),
		clk,
		newTestIDs("u"),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	users := newUserService(t, "")
	ctx := context.Background()

	reg, err := users.Register(ctx, &dto.RegisterRequest{Nick: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Token == "" {
		t.Error("register should sign the user in")
	}
	if reg.User.XP != 0 {
		t.Errorf("new user xp = %d, want 0", reg.User.XP)
	}

	login, err := users.Login(ctx, &dto.LoginRequest{Nick: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login user id = %s, want %s", login.User.ID, reg.User.ID)
	}
}

func TestRegisterDuplicateNick(t *testing.T) {
	users := newUserService(t, "")
	ctx := context.Background()

	if _, err := users.Register(ctx, &dto.RegisterRequest{Nick: "alice", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := users.Register(ctx, &dto.RegisterRequest{Nick: "alice", Password: "different"})
	if !errors.Is(err, apperrors.ErrNickExists) {
		t.Fatalf("got %v, want NICK_EXISTS", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newUserService(t, "")
	ctx := context.Background()

	if _, err := users.Register(ctx, &dto.RegisterRequest{Nick: "alice", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Nick: "alice", Password: "wrong"}},
		{"unknown nick", dto.LoginRequest{Nick: "nobody", Password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Login(ctx, &tt.req)
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("got %v, want INVALID", err)
			}
		})
	}
}

func TestAddXP(t *testing.T) {
	users := newUserService(t, "")
	ctx := context.Background()

	reg, err := users.Register(ctx, &dto.RegisterRequest{Nick: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	xp, err := users.AddXP(ctx, reg.User.ID, 150)
	if err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if xp != 150 {
		t.Errorf("xp = %d, want 150", xp)
	}

	xp, err = users.AddXP(ctx, reg.User.ID, 50)
	if err != nil {
		t.Fatalf("add xp again: %v", err)
	}
	if xp != 200 {
		t.Errorf("xp = %d, want 200", xp)
	}
}

func TestAddXPRejectsOutOfRangeAmounts(t *testing.T) {
	users := newUserService(t, "")
	ctx := context.Background()

	reg, err := users.Register(ctx, &dto.RegisterRequest{Nick: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, amount := range []int64{0, -5, 1001} {
		if _, err := users.AddXP(ctx, reg.User.ID, amount); !errors.Is(err, apperrors.ErrAmountInvalid) {
			t.Errorf("amount %d: got %v, want AMOUNT_INVALID", amount, err)
		}
	}
}

func TestAddXPUnknownUser(t *testing.T) {
	users := newUserService(t, "")

	_, err := users.AddXP(context.Background(), "missing", 10)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}
