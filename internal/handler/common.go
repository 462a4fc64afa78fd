package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/internal/constants"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/middleware"
)

// writeDomainError maps a service error onto the failure envelope. Metadata
// carried by the error (e.g. waitMs on throttled chat messages) is merged
// into the envelope as top-level fields.
func writeDomainError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)

	code := apperrors.ErrInternal.Code
	var meta map[string]any
	if domainErr := apperrors.GetDomainError(err); domainErr != nil {
		code = domainErr.Code
		meta = domainErr.Meta
	}

	body := constants.BuildErrorResponse(code, nil)
	for k, v := range meta {
		body[k] = v
	}

	c.JSON(status, body)
}

// currentUserID reads the authenticated user id set by the JWT middleware.
func currentUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}
