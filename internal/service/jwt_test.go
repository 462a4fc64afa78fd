package service

import (
	"testing"
	"time"

	"github.com/toolflix/backend/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	clk := newTestClock()
	jwtSvc := newTestJWT("boss", clk)

	tests := []struct {
		nick     string
		wantRole string
	}{
		{"alice", RoleUser},
		{"boss", RoleMaster},
	}

	for _, tt := range tests {
		t.Run(tt.nick, func(t *testing.T) {
			token, err := jwtSvc.GenerateToken(&model.User{ID: "u-1", Nick: tt.nick})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}

			claims, err := jwtSvc.ValidateToken(token)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if claims.UserID != "u-1" || claims.Nick != tt.nick {
				t.Errorf("claims = %s/%s, want u-1/%s", claims.UserID, claims.Nick, tt.nick)
			}
			if claims.Role != tt.wantRole {
				t.Errorf("role = %s, want %s", claims.Role, tt.wantRole)
			}
		})
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	clk := newTestClock()
	jwtSvc := newTestJWT("", clk)

	token, err := jwtSvc.GenerateToken(&model.User{ID: "u-1", Nick: "alice"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	clk.Advance(31 * 24 * time.Hour)

	if _, err := jwtSvc.ValidateToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	clk := newTestClock()
	jwtSvc := newTestJWT("", clk)
	other := newTestJWT("", clk)
	other.secret = []byte("different-secret")

	token, err := other.GenerateToken(&model.User{ID: "u-1", Nick: "alice"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := jwtSvc.ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}
