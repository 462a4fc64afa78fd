package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/config"
	"github.com/toolflix/backend/internal/constants"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/service"
	"github.com/toolflix/backend/pkg/logger"
	"go.uber.org/zap"
)

// AdminHeaderKey is the shared-secret header accepted on privileged routes.
const AdminHeaderKey = "X-Admin-Key"

type AdminMiddleware struct {
	adminKey string
}

func NewAdminMiddleware(cfg *config.Config) *AdminMiddleware {
	return &AdminMiddleware{adminKey: cfg.Auth.AdminKey}
}

// RequireAdminOrMaster allows a request through when it carries the admin
// key header, or when the JWT identity (set by OptionalAuth or RequireAuth
// earlier in the chain) has the master role.
func (m *AdminMiddleware) RequireAdminOrMaster() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(AdminHeaderKey); key != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(m.adminKey)) == 1 {
				c.Next()
				return
			}
			logger.GetLogger().Warn("Rejected admin key",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()))
		}

		if role, ok := c.Get(CtxUserRole); ok && role == service.RoleMaster {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, constants.BuildErrorResponse(apperrors.ErrAdminRequired.Code, nil))
		c.Abort()
	}
}
