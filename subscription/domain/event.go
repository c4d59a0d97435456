package domain

import (
	"encoding/json"
	"errors"
)

// EventType is the RevenueCat webhook event vocabulary.
type EventType string

const (
	EventInitialPurchase     EventType = "INITIAL_PURCHASE"
	EventRenewal             EventType = "RENEWAL"
	EventCancellation        EventType = "CANCELLATION"
	EventUncancellation      EventType = "UNCANCELLATION"
	EventExpiration          EventType = "EXPIRATION"
	EventBillingIssue        EventType = "BILLING_ISSUE"
	EventSubscriberAlias     EventType = "SUBSCRIBER_ALIAS"
	EventNonRenewingPurchase EventType = "NON_RENEWING_PURCHASE"
	EventSubscriptionPaused  EventType = "SUBSCRIPTION_PAUSED"
	EventProductChange       EventType = "PRODUCT_CHANGE"
)

const trialPeriodType = "TRIAL"

var (
	ErrInvalidPayload   = errors.New("invalid webhook payload")
	ErrMissingEventType = errors.New("webhook event missing type")
)

// BillingEvent is a webhook event parsed into an explicit shape. It is
// transient: events are not persisted, only the record mutations they derive.
type BillingEvent struct {
	Type              EventType
	AppUserID         string
	OriginalAppUserID string
	ProductID         *string
	EntitlementID     *string
	ExpirationAtMs    *int64
	IsTrial           bool
}

// UserID returns the identity the event applies to: the app user id, falling
// back to the original app user id. Empty when the event carries neither.
func (e *BillingEvent) UserID() string {
	if e.AppUserID != "" {
		return e.AppUserID
	}

	return e.OriginalAppUserID
}

type webhookPayload struct {
	APIVersion string           `json:"api_version"`
	Event      *webhookRawEvent `json:"event"`
}

type webhookRawEvent struct {
	Type              string   `json:"type"`
	AppUserID         string   `json:"app_user_id"`
	OriginalAppUserID string   `json:"original_app_user_id"`
	ProductID         *string  `json:"product_id"`
	EntitlementIDs    []string `json:"entitlement_ids"`
	ExpirationAtMs    *int64   `json:"expiration_at_ms"`
	PeriodType        string   `json:"period_type"`
}

// ParseBillingEvent parses a raw webhook body into a BillingEvent. A payload
// without an event type tag is rejected here, at the boundary.
func ParseBillingEvent(body []byte) (*BillingEvent, error) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrInvalidPayload
	}

	if payload.Event == nil {
		return nil, ErrInvalidPayload
	}

	raw := payload.Event
	if raw.Type == "" {
		return nil, ErrMissingEventType
	}

	event := BillingEvent{
		Type:              EventType(raw.Type),
		AppUserID:         raw.AppUserID,
		OriginalAppUserID: raw.OriginalAppUserID,
		ProductID:         raw.ProductID,
		ExpirationAtMs:    raw.ExpirationAtMs,
		IsTrial:           raw.PeriodType == trialPeriodType,
	}

	if len(raw.EntitlementIDs) > 0 {
		event.EntitlementID = &raw.EntitlementIDs[0]
	}

	return &event, nil
}
