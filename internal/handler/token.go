package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/service"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
)

type TokenHandler struct {
	tokenService   *service.TokenService
	premiumService *service.PremiumService
}

func NewTokenHandler(tokenService *service.TokenService, premiumService *service.PremiumService) *TokenHandler {
	return &TokenHandler{
		tokenService:   tokenService,
		premiumService: premiumService,
	}
}

// Issue mints a new redemption token (privileged)
func (h *TokenHandler) Issue(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Issue")

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	response, err := h.tokenService.Issue(ctx, req.Days)
	if err != nil {
		logger.ErrorWithContext(ctx, "Token issuance failed").
			Err(err).
			Log()
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildOKResponse(gin.H{
		"token":     response.Token,
		"createdAt": response.CreatedAt,
		"expiresAt": response.ExpiresAt,
	}))
}

// Redeem applies a redemption code to a user. Domain outcomes are reported
// at HTTP 200 with {ok:false, reason}; only malformed input and
// infrastructure failures use error statuses. Redemption clients branch on
// the reason string, not the status code.
func (h *TokenHandler) Redeem(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Redeem")

	var req dto.RedeemTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	err := h.tokenService.Redeem(ctx, req.Token, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRedeemTokenNotFound),
			errors.Is(err, apperrors.ErrRedeemTokenExpired),
			errors.Is(err, apperrors.ErrRedeemTokenUsed):
			logger.InfoWithContext(ctx, "Token redemption rejected").
				String("redeemer_id", req.UserID).
				String("rejection", apperrors.GetDomainError(err).Code).
				Log()
			c.JSON(http.StatusOK, constants.BuildReasonResponse(apperrors.GetDomainError(err).Code))
		default:
			writeDomainError(c, err)
		}
		return
	}

	logger.InfoWithContext(ctx, "Token redeemed").
		String("redeemer_id", req.UserID).
		Log()

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"valid": true,
	}))
}

// PremiumStatus reports a user's premium entitlement
func (h *TokenHandler) PremiumStatus(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PremiumStatus")

	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, nil))
		return
	}

	status, err := h.premiumService.Status(ctx, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	body := gin.H{"premium": status.Premium}
	if status.Since != nil {
		body["since"] = *status.Since
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(body))
}

// PremiumTotal reports how many users hold premium
func (h *TokenHandler) PremiumTotal(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PremiumTotal")

	total, err := h.premiumService.Total(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"totalPremium": total,
	}))
}
