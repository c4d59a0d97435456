package domain

import (
	"time"
)

// Status is the lifecycle state of a user's subscription.
type Status string

const (
	StatusActive    Status = "active"
	StatusTrialing  Status = "trialing"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Subscription is the entitlement record stored per user. One document per
// user id; created on the first recognized webhook event and never deleted.
// Mutations go through the DAL's merge-upsert only, so fields absent from a
// patch keep their stored value.
type Subscription struct {
	UserID string `firestore:"-" json:"user_id"`

	// RevenueCatCustomerID correlates aliasing events; secondary lookup field.
	RevenueCatCustomerID string `firestore:"revenueCatCustomerId" json:"revenuecat_customer_id,omitempty"`

	Status Status `firestore:"status" json:"status"`

	// Entitlements holds the granted entitlement tags. Membership is what
	// matters; an expired record always has an empty set.
	Entitlements []string `firestore:"entitlements" json:"entitlements"`

	CurrentProductID *string `firestore:"currentProductId" json:"current_product_id"`

	// ExpiresAt meaning depends on Status: for cancelled records it bounds
	// the grace period during which access remains valid.
	ExpiresAt *time.Time `firestore:"expiresAt" json:"expires_at"`

	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updated_at"`
}
