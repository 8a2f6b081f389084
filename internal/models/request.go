package models

import "time"

// VisitRequest is the durable record of one accepted guest-visit intake.
// Records are append-only: they are created once and never updated.
type VisitRequest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	UserID    int64     `json:"tg_user_id,omitempty"`
	Username  string    `json:"tg_username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
