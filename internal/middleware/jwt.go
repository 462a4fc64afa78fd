package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/internal/constants"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/service"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
	"go.uber.org/zap"
)

// Gin context keys set by the auth middleware.
const (
	CtxUserID   = "user_id"
	CtxUserNick = "user_nick"
	CtxUserRole = "user_role"
)

type JWTMiddleware struct {
	jwtService *service.JWTService
}

func NewJWTMiddleware(jwtService *service.JWTService) *JWTMiddleware {
	return &JWTMiddleware{jwtService: jwtService}
}

// RequireAuth validates the bearer token and sets user info in context
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			logger.GetLogger().Warn("Unauthorized request",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.GetDomainError(err).Code, nil))
			c.Abort()
			return
		}

		m.setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets user info when a valid token is present but never rejects
func (m *JWTMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err == nil {
			m.setIdentity(c, claims)
		}
		c.Next()
	}
}

func (m *JWTMiddleware) authenticate(c *gin.Context) (*service.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrNoToken
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, apperrors.ErrNoToken
	}

	claims, err := m.jwtService.ValidateToken(tokenParts[1])
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrTokenInvalid, err)
	}

	return claims, nil
}

func (m *JWTMiddleware) setIdentity(c *gin.Context, claims *service.Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxUserNick, claims.Nick)
	c.Set(CtxUserRole, claims.Role)

	ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
	ctx = ctxutil.WithUserNick(ctx, claims.Nick)
	c.Request = c.Request.WithContext(ctx)
}
