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

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// SendMessage appends a message to the caller's live chat, creating the
// chat when none exists
func (h *ChatHandler) SendMessage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SendMessage")

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrNoToken.Code, nil))
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	chat, err := h.chatService.SendUserMessage(ctx, userID, req.Message)
	if err != nil {
		logger.WarnWithContext(ctx, "Chat message rejected").
			Err(err).
			Log()
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildOKResponse(gin.H{
		"chatId":    chat.ChatID,
		"expiresAt": chat.ExpiresAt,
	}))
}

// Messages returns the caller's live chat and its transcript
func (h *ChatHandler) Messages(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Messages")

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrNoToken.Code, nil))
		return
	}

	chat, msgs, err := h.chatService.Messages(ctx, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"chatId":    chat.ChatID,
		"expiresAt": chat.ExpiresAt,
		"messages":  msgs,
	}))
}
