package service

import (
	"context"
	"strings"

	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/model"
	"github.com/toolflix/backend/internal/repository"
	"github.com/toolflix/backend/pkg/clock"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/id"
	"github.com/toolflix/backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
	jwt      *JWTService
	clock    clock.Clock
	idGen    id.Generator
}

func NewUserService(userRepo *repository.UserRepository, jwtSvc *JWTService, clk clock.Clock, idGen id.Generator) *UserService {
	return &UserService{
		userRepo: userRepo,
		jwt:      jwtSvc,
		clock:    clk,
		idGen:    idGen,
	}
}

// Register creates an account and signs the user in. Nicks are unique; a
// duplicate insert maps to NICK_EXISTS regardless of which writer raced first.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Register")

	nick := strings.TrimSpace(req.Nick)
	if nick == "" {
		return nil, apperrors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		ID:           s.idGen.NewID(),
		Nick:         nick,
		PasswordHash: string(hash),
		XP:           0,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrNickExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User registered").
		String("registered_user_id", user.ID).
		String("registered_nick", user.Nick).
		Log()

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Login verifies the nick and password. Both an unknown nick and a wrong
// password map to the same INVALID error so login does not leak which one it was.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	user, err := s.userRepo.GetByNick(ctx, strings.TrimSpace(req.Nick))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.WarnWithContext(ctx, "Failed login attempt").
			String("login_nick", req.Nick).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Me returns the authenticated user's profile.
func (s *UserService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Me")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// AddXP increments the user's experience counter and returns the new total.
// The per-request amount is capped to keep a single call from inflating the
// counter arbitrarily.
func (s *UserService) AddXP(ctx context.Context, userID string, amount int64) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "AddXP")

	if amount <= 0 || amount > constants.XPMaxPerRequest {
		return 0, apperrors.ErrAmountInvalid
	}

	xp, err := s.userRepo.AddXP(ctx, userID, amount)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return xp, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:   user.ID,
		Nick: user.Nick,
		XP:   user.XP,
	}
}
