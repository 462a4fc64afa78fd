package dto

type IssueTokenRequest struct {
	Days int `json:"days" binding:"omitempty,min=1,max=3650"`
}

type IssueTokenResponse struct {
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// RedeemTokenRequest deliberately binds only on presence: redemption
// reports malformed or unknown codes as a 200 {ok:false, reason} outcome,
// so format checking happens after normalization in the service.
type RedeemTokenRequest struct {
	Token  string `json:"token" binding:"required"`
	UserID string `json:"userId" binding:"required"`
}

type PremiumStatusResponse struct {
	Premium bool   `json:"premium"`
	Since   *int64 `json:"since,omitempty"`
}
