package entity

import "time"

// Ticket is a support request. Priority is optional.
type Ticket struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IssueType   string    `json:"issue_type"`
	Priority    *string   `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}
