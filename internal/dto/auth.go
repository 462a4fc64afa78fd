package dto

type RegisterRequest struct {
	Nick     string `json:"nick" binding:"required,min=1,max=32"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type LoginRequest struct {
	Nick     string `json:"nick" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID   string `json:"id"`
	Nick string `json:"nick"`
	XP   int64  `json:"xp"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
