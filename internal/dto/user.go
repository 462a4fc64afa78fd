package dto

// AddXPRequest carries the xp increment. Range (0, 1000] is enforced in the
// service so out-of-range amounts map to AMOUNT_INVALID rather than a
// generic binding failure.
type AddXPRequest struct {
	Amount int64 `json:"amount"`
}
