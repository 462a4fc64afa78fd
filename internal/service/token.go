package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/model"
	"github.com/toolflix/backend/internal/repository"
	"github.com/toolflix/backend/pkg/clock"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"github.com/toolflix/backend/pkg/validation"
	"gorm.io/gorm"
)

// codeAlphabet excludes nothing: codes are validated case-insensitively and
// normalized to upper case before any lookup.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type TokenService struct {
	tokenRepo *repository.TokenRepository
	userRepo  *repository.UserRepository
	clock     clock.Clock
}

func NewTokenService(tokenRepo *repository.TokenRepository, userRepo *repository.UserRepository, clk clock.Clock) *TokenService {
	return &TokenService{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		clock:     clk,
	}
}

// NormalizeCode canonicalizes a redemption code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Issue mints a new redemption code valid for the given number of days
// (default 30). Collisions on the random code are retried; with a 36^12
// space they are effectively theoretical.
func (s *TokenService) Issue(ctx context.Context, days int) (*dto.IssueTokenResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Issue")

	if days <= 0 {
		days = constants.DefaultTokenValidityDays
	}

	now := s.clock.Now()
	expiresAt := now.Add(time.Duration(days) * 24 * time.Hour)

	for attempt := 0; attempt < 3; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}

		token := &model.Token{
			Code:      code,
			CreatedAt: now,
			ExpiresAt: expiresAt,
		}

		if err := s.tokenRepo.Create(ctx, token); err != nil {
			if err == gorm.ErrDuplicatedKey {
				continue
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}

		logger.InfoWithContext(ctx, "Redemption token issued").
			String("token", code).
			Int("validity_days", days).
			Log()

		return &dto.IssueTokenResponse{
			Token:     code,
			CreatedAt: now.UnixMilli(),
			ExpiresAt: expiresAt.UnixMilli(),
		}, nil
	}

	return nil, apperrors.WrapError(apperrors.ErrInternal, fmt.Errorf("could not generate a unique token code"))
}

// Redeem applies a redemption code to a user. The state machine:
//
//	unknown code          -> TOKEN_INEXISTENTE
//	past expires_at       -> TOKEN_EXPIRADO (checked before the used flag)
//	used by another user  -> TOKEN_JA_USADO
//	used by the same user -> success, no second grant
//	unredeemed            -> mark used and grant premium atomically
func (s *TokenService) Redeem(ctx context.Context, code, userID string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Redeem")

	code = NormalizeCode(code)

	// Anything that cannot be a code is reported the same way as a code
	// that was never issued, without touching the ledger.
	if !validation.IsTokenCode(code) {
		return apperrors.ErrRedeemTokenNotFound
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.tokenRepo.GetByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrRedeemTokenNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	now := s.clock.Now()
	if token.ExpiresAt.Before(now) {
		return apperrors.ErrRedeemTokenExpired
	}

	if token.UsedBy != nil {
		if *token.UsedBy == userID {
			logger.InfoWithContext(ctx, "Token re-redeemed by owner").
				String("token", code).
				String("redeemer_id", userID).
				Log()
			return nil
		}
		return apperrors.ErrRedeemTokenUsed
	}

	if err := s.tokenRepo.Redeem(ctx, code, userID, now); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return nil
}

func generateCode() (string, error) {
	block := func() (string, error) {
		var b strings.Builder
		for i := 0; i < constants.TokenCodeBlockLength; i++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", err
			}
			b.WriteByte(codeAlphabet[n.Int64()])
		}
		return b.String(), nil
	}

	first, err := block()
	if err != nil {
		return "", err
	}
	second, err := block()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%s", constants.TokenCodePrefix, first, second), nil
}
