package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBillingEvent(t *testing.T) {
	body := []byte(`{
		"api_version": "1.0",
		"event": {
			"type": "INITIAL_PURCHASE",
			"app_user_id": "user-1",
			"original_app_user_id": "rc_user-1",
			"product_id": "dumplin_pro_monthly",
			"entitlement_ids": ["pro", "premium_stickers"],
			"expiration_at_ms": 1717243200000,
			"period_type": "TRIAL"
		}
	}`)

	event, err := ParseBillingEvent(body)
	assert.NoError(t, err)
	assert.Equal(t, EventInitialPurchase, event.Type)
	assert.Equal(t, "user-1", event.AppUserID)
	assert.Equal(t, "rc_user-1", event.OriginalAppUserID)
	assert.Equal(t, "dumplin_pro_monthly", *event.ProductID)
	assert.Equal(t, "pro", *event.EntitlementID)
	assert.Equal(t, int64(1717243200000), *event.ExpirationAtMs)
	assert.True(t, event.IsTrial)
}

func TestParseBillingEvent_MinimalPayload(t *testing.T) {
	event, err := ParseBillingEvent([]byte(`{"event": {"type": "EXPIRATION", "app_user_id": "user-1"}}`))
	assert.NoError(t, err)
	assert.Equal(t, EventExpiration, event.Type)
	assert.Nil(t, event.ProductID)
	assert.Nil(t, event.EntitlementID)
	assert.Nil(t, event.ExpirationAtMs)
	assert.False(t, event.IsTrial)
}

func TestParseBillingEvent_MissingType(t *testing.T) {
	_, err := ParseBillingEvent([]byte(`{"event": {"app_user_id": "user-1"}}`))
	assert.ErrorIs(t, err, ErrMissingEventType)
}

func TestParseBillingEvent_InvalidPayload(t *testing.T) {
	_, err := ParseBillingEvent([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = ParseBillingEvent([]byte(`{"api_version": "1.0"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestBillingEventUserID(t *testing.T) {
	e := &BillingEvent{AppUserID: "a", OriginalAppUserID: "b"}
	assert.Equal(t, "a", e.UserID())

	e = &BillingEvent{OriginalAppUserID: "b"}
	assert.Equal(t, "b", e.UserID())

	e = &BillingEvent{}
	assert.Empty(t, e.UserID())
}
