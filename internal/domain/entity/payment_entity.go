package entity

import "time"

type Payment struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
