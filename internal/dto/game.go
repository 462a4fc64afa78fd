package dto

type UpsertGameRequest struct {
	Title    string `json:"title" binding:"required"`
	Link     string `json:"link" binding:"required"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Premium  bool   `json:"premium"`
}

type DeleteGameRequest struct {
	Link string `json:"link" binding:"required"`
}

type GameResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Premium   bool   `json:"premium"`
	CreatedAt int64  `json:"createdAt"`
}
