package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, http.StatusOK},
		{"empty message", ErrEmptyMessage, http.StatusBadRequest},
		{"message too long", ErrMessageTooLong, http.StatusBadRequest},
		{"xp amount", ErrAmountInvalid, http.StatusBadRequest},
		{"missing token", ErrNoToken, http.StatusUnauthorized},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"admin required", ErrAdminRequired, http.StatusForbidden},
		{"unknown code", ErrRedeemTokenNotFound, http.StatusNotFound},
		{"chat not found", ErrChatNotFound, http.StatusNotFound},
		{"nick taken", ErrNickExists, http.StatusConflict},
		{"code used by other", ErrRedeemTokenUsed, http.StatusConflict},
		{"code expired", ErrRedeemTokenExpired, http.StatusGone},
		{"chat expired", ErrChatExpired, http.StatusGone},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"non-domain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWrapErrorPreservesCodeAndUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := WrapError(ErrInternal, cause)

	if wrapped.Code != ErrInternal.Code {
		t.Errorf("Expected code %s, got %s", ErrInternal.Code, wrapped.Code)
	}

	if !errors.Is(wrapped, cause) {
		t.Error("Expected wrapped error to match its cause via errors.Is")
	}

	// Wrapping through fmt.Errorf must still resolve to a domain error
	deep := fmt.Errorf("handler: %w", wrapped)
	if got := GetDomainError(deep); got == nil || got.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected INTERNAL_ERROR through wrapping, got %+v", got)
	}
}

func TestWithMetaDoesNotMutateOriginal(t *testing.T) {
	withWait := ErrRateLimited.WithMeta(map[string]any{"waitMs": int64(12000)})

	if ErrRateLimited.Meta != nil {
		t.Error("Expected predefined error to stay metadata-free")
	}

	if withWait.Meta["waitMs"].(int64) != 12000 {
		t.Errorf("Expected waitMs 12000, got %v", withWait.Meta["waitMs"])
	}

	if withWait.Code != "RATE_LIMITED" {
		t.Errorf("Expected RATE_LIMITED, got %s", withWait.Code)
	}
}
