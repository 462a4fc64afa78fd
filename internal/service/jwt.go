package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/toolflix/backend/config"
	"github.com/toolflix/backend/internal/model"
	"github.com/toolflix/backend/pkg/clock"
)

// Role assigned to the configured master nick; every other account is "user".
const (
	RoleUser   = "user"
	RoleMaster = "master"
)

// Claims is the JWT payload issued on register and login.
type Claims struct {
	UserID string `json:"id"`
	Nick   string `json:"nick"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret     []byte
	expiration time.Duration
	masterNick string
	clock      clock.Clock
}

func NewJWTService(cfg *config.Config, clk clock.Clock) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.JWT.Secret),
		expiration: cfg.JWT.ExpirationTime,
		masterNick: cfg.Auth.MasterNick,
		clock:      clk,
	}
}

// GenerateToken signs an HS256 token for the user. The master nick gets the
// master role, which the admin middleware accepts in place of the admin key.
func (s *JWTService) GenerateToken(user *model.User) (string, error) {
	now := s.clock.Now()

	role := RoleUser
	if s.masterNick != "" && user.Nick == s.masterNick {
		role = RoleMaster
	}

	claims := Claims{
		UserID: user.ID,
		Nick:   user.Nick,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies a signed token, rejecting any signing
// method other than HMAC.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
