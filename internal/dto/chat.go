package dto

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatMessageResponse struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}

type ChatResponse struct {
	ChatID    string `json:"chatId"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ChatSummaryResponse is the admin-facing listing row, ordered by recency.
type ChatSummaryResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	Nick           string `json:"nick"`
	CreatedAt      int64  `json:"createdAt"`
	ExpiresAt      int64  `json:"expiresAt"`
	LastActivityAt int64  `json:"lastActivityAt"`
}
