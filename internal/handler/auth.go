package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toolflix/backend/internal/constants"
	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/service"
	ctxutil "github.com/toolflix/backend/pkg/context"
	"github.com/toolflix/backend/pkg/logger"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Register handles account creation and signs the new user in
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid register request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	response, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("register_nick", req.Nick).
			Err(err).
			Log()
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildOKResponse(gin.H{
		"token": response.Token,
		"user":  response.User,
	}))
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	response, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("login_nick", req.Nick).
			Err(err).
			Log()
		writeDomainError(c, err)
		return
	}

	logger.InfoWithContext(ctx, "User logged in").
		String("login_nick", req.Nick).
		Log()

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"token": response.Token,
		"user":  response.User,
	}))
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Me")

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrNoToken.Code, nil))
		return
	}

	user, err := h.userService.Me(ctx, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"user": user,
	}))
}
