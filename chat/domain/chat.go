package domain

import "time"

// ChatRequest is one inbound chat message, carrying the client-reported
// usage counter alongside the message itself.
type ChatRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	Message      string `json:"message" binding:"required"`
	MessageCount int    `json:"message_count" binding:"gte=0"`
	WeekStartMs  *int64 `json:"week_start_ms"`
}

// ChatResponse is the processed reply for one message.
type ChatResponse struct {
	MessageID         string     `json:"message_id"`
	Reply             string     `json:"reply"`
	RemainingMessages *int       `json:"remaining_messages"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}
