package service

import (
	"time"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/slice"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

// IsPro reports whether a subscription record grants the pro entitlement at
// the given instant. A missing record is never pro. Cancelled records keep
// access through their grace period, bounded by expiresAt.
func IsPro(sub *domain.Subscription, now time.Time) bool {
	if sub == nil {
		return false
	}

	switch sub.Status {
	case domain.StatusActive, domain.StatusTrialing:
		return slice.Contains(sub.Entitlements, common.ProEntitlement)
	case domain.StatusCancelled:
		if sub.ExpiresAt == nil || !sub.ExpiresAt.After(now) {
			return false
		}

		return slice.Contains(sub.Entitlements, common.ProEntitlement)
	default:
		return false
	}
}
