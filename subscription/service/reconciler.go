package service

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

// HandleWebhookEvent applies one billing event to the user's subscription
// record. Events are applied in receipt order; each event's expiration is
// taken as the new truth, so a replayed event converges to the same record.
// Unrecognized event types and events without a user identity are logged and
// dropped without error, to keep the processor from redelivering them.
func (s *Service) HandleWebhookEvent(ctx context.Context, event *domain.BillingEvent) error {
	l := s.logger(ctx)

	userID := event.UserID()
	if userID == "" {
		l.Warningf("webhook event %s has no user identity, skipping", event.Type)
		return nil
	}

	switch event.Type {
	case domain.EventInitialPurchase, domain.EventNonRenewingPurchase:
		status := domain.StatusActive
		if event.IsTrial {
			status = domain.StatusTrialing
		}

		return s.applyGrant(ctx, userID, event, status, true)
	case domain.EventRenewal, domain.EventUncancellation, domain.EventProductChange:
		return s.applyGrant(ctx, userID, event, domain.StatusActive, false)
	case domain.EventCancellation, domain.EventSubscriptionPaused:
		return s.applyCancellation(ctx, userID, event)
	case domain.EventExpiration:
		return s.applyExpiration(ctx, userID)
	case domain.EventBillingIssue:
		l.Infof("billing issue reported for user %s, awaiting expiration", userID)
		return nil
	case domain.EventSubscriberAlias:
		return s.applyAlias(ctx, userID, event)
	default:
		l.Infof("ignoring unrecognized webhook event type %s for user %s", event.Type, userID)
		return nil
	}
}

// applyGrant handles the purchase and renewal family: the event carries the
// full new truth for status, entitlements and product.
func (s *Service) applyGrant(ctx context.Context, userID string, event *domain.BillingEvent, status domain.Status, linkCustomer bool) error {
	return s.dal.UpsertWith(ctx, userID, func(current *domain.Subscription) (map[string]interface{}, error) {
		patch := map[string]interface{}{
			"status":           status,
			"entitlements":     entitlementSet(event),
			"currentProductId": event.ProductID,
		}

		if event.ExpirationAtMs != nil {
			patch["expiresAt"] = msToTime(*event.ExpirationAtMs)
		}

		if linkCustomer && event.OriginalAppUserID != "" {
			patch["revenueCatCustomerId"] = event.OriginalAppUserID
		}

		markCreated(patch, current)

		return patch, nil
	})
}

// applyCancellation moves the record to cancelled while carrying the current
// entitlements over unchanged: access stays valid until expiry. The read and
// re-write happen in one transaction so a racing grant is not clobbered with
// stale entitlements.
func (s *Service) applyCancellation(ctx context.Context, userID string, event *domain.BillingEvent) error {
	return s.dal.UpsertWith(ctx, userID, func(current *domain.Subscription) (map[string]interface{}, error) {
		entitlements := []string{}
		if current != nil && current.Entitlements != nil {
			entitlements = current.Entitlements
		}

		patch := map[string]interface{}{
			"status":       domain.StatusCancelled,
			"entitlements": entitlements,
		}

		if event.ExpirationAtMs != nil {
			patch["expiresAt"] = msToTime(*event.ExpirationAtMs)
		}

		markCreated(patch, current)

		return patch, nil
	})
}

func (s *Service) applyExpiration(ctx context.Context, userID string) error {
	return s.dal.UpsertWith(ctx, userID, func(current *domain.Subscription) (map[string]interface{}, error) {
		patch := map[string]interface{}{
			"status":           domain.StatusExpired,
			"entitlements":     []string{},
			"currentProductId": nil,
			"expiresAt":        s.now().UTC(),
		}

		markCreated(patch, current)

		return patch, nil
	})
}

// applyAlias links the processor's customer id without touching any
// entitlement fields. An alias can be the first event a user ever produces,
// so the creation path runs through the transaction to stamp createdAt.
func (s *Service) applyAlias(ctx context.Context, userID string, event *domain.BillingEvent) error {
	customerID := event.OriginalAppUserID
	if customerID == "" {
		customerID = userID
	}

	return s.dal.UpsertWith(ctx, userID, func(current *domain.Subscription) (map[string]interface{}, error) {
		patch := map[string]interface{}{
			"revenueCatCustomerId": customerID,
		}

		markCreated(patch, current)

		return patch, nil
	})
}

func entitlementSet(event *domain.BillingEvent) []string {
	if event.EntitlementID == nil {
		return []string{}
	}

	return []string{*event.EntitlementID}
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func markCreated(patch map[string]interface{}, current *domain.Subscription) {
	if current == nil {
		patch["createdAt"] = firestore.ServerTimestamp
	}
}
