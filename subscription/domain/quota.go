package domain

import "time"

// QuotaWindow is the client-reported usage counter for the rolling weekly
// window. The counter and window start are trusted as given; the server does
// not keep its own count.
type QuotaWindow struct {
	MessageCount  int    `json:"message_count" binding:"gte=0"`
	WindowStartMs *int64 `json:"week_start_ms"`
}

// StatusResponse is the entitlement summary returned to clients.
type StatusResponse struct {
	UserID            string     `json:"user_id"`
	IsPro             bool       `json:"is_pro"`
	Status            Status     `json:"status"`
	Entitlements      []string   `json:"entitlements"`
	CurrentProductID  *string    `json:"current_product_id"`
	ExpiresAt         *time.Time `json:"expires_at"`
	RemainingMessages *int       `json:"remaining_messages"`
	WeeklyLimit       int        `json:"weekly_limit"`
}

// MessageLimitResponse is the quota gate decision for a single message.
// Remaining is nil for pro users, who have no cap to count against.
type MessageLimitResponse struct {
	Allowed   bool   `json:"allowed"`
	Remaining *int   `json:"remaining"`
	Limit     int    `json:"limit"`
	IsPro     bool   `json:"is_pro"`
	Message   string `json:"message,omitempty"`
}
