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

// ChatAdminHandler serves the operator dashboard: listing chats, reading
// transcripts and replying as the operator.
type ChatAdminHandler struct {
	chatService *service.ChatService
}

func NewChatAdminHandler(chatService *service.ChatService) *ChatAdminHandler {
	return &ChatAdminHandler{
		chatService: chatService,
	}
}

// ListChats returns every chat with its owner's nick, most recently active first
func (h *ChatAdminHandler) ListChats(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListChats")

	chats, err := h.chatService.ListChats(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"chats": chats,
	}))
}

// ChatMessages returns the transcript of a chat by id
func (h *ChatAdminHandler) ChatMessages(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChatMessages")

	chatID := c.Param("chatId")
	msgs, err := h.chatService.ChatMessages(ctx, chatID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildOKResponse(gin.H{
		"messages": msgs,
	}))
}

// SendMessage appends an operator reply to a chat
func (h *ChatAdminHandler) SendMessage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SendMessage")

	chatID := c.Param("chatId")

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidInput.Code, err.Error()))
		return
	}

	msg, err := h.chatService.SendOperatorMessage(ctx, chatID, req.Message)
	if err != nil {
		logger.WarnWithContext(ctx, "Operator message rejected").
			String("chat_id", chatID).
			Err(err).
			Log()
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildOKResponse(gin.H{
		"message": msg,
	}))
}
