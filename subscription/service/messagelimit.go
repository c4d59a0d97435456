package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/subscription/dal"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

// quotaWindow is the rolling period after which the client-reported counter
// is treated as reset.
const quotaWindow = 7 * 24 * time.Hour

// EvaluateMessageLimit decides whether one more message is allowed under the
// weekly cap. Pro users are unlimited and get a nil remaining, which is how
// they are told apart from a free user who has not used anything yet. A
// window start older than seven days resets the effective count to zero.
func EvaluateMessageLimit(isPro bool, count int, windowStartMs *int64, now time.Time, limit int) (bool, *int) {
	if isPro {
		return true, nil
	}

	effective := count
	if windowStartMs != nil && now.Sub(time.UnixMilli(*windowStartMs)) >= quotaWindow {
		effective = 0
	}

	remaining := limit - effective
	if remaining < 0 {
		remaining = 0
	}

	return effective < limit, common.Int(remaining)
}

// GetStatus returns the entitlement summary for a user, including how many
// messages remain in the current window. A user with no record is a free
// user with an expired status.
func (s *Service) GetStatus(ctx context.Context, userID string, quota domain.QuotaWindow) (*domain.StatusResponse, error) {
	sub, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	isPro := IsPro(sub, now)
	_, remaining := EvaluateMessageLimit(isPro, quota.MessageCount, quota.WindowStartMs, now, s.weeklyLimit)

	resp := domain.StatusResponse{
		UserID:            userID,
		IsPro:             isPro,
		Status:            domain.StatusExpired,
		Entitlements:      []string{},
		RemainingMessages: remaining,
		WeeklyLimit:       s.weeklyLimit,
	}

	if sub != nil {
		resp.Status = sub.Status
		resp.ExpiresAt = sub.ExpiresAt
		resp.CurrentProductID = sub.CurrentProductID

		if sub.Entitlements != nil {
			resp.Entitlements = sub.Entitlements
		}
	}

	return &resp, nil
}

// CheckMessageLimit gates a single chat message against the weekly quota.
// Exceeding the quota is a normal outcome, not an error.
func (s *Service) CheckMessageLimit(ctx context.Context, userID string, quota domain.QuotaWindow) (*domain.MessageLimitResponse, error) {
	sub, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	isPro := IsPro(sub, now)
	allowed, remaining := EvaluateMessageLimit(isPro, quota.MessageCount, quota.WindowStartMs, now, s.weeklyLimit)

	resp := domain.MessageLimitResponse{
		Allowed:   allowed,
		Remaining: remaining,
		Limit:     s.weeklyLimit,
		IsPro:     isPro,
	}

	if !allowed {
		resp.Message = fmt.Sprintf("You've reached your weekly limit of %d messages. Upgrade to Pro for unlimited messages.", s.weeklyLimit)
	}

	return &resp, nil
}

// lookup fetches the user's record, mapping a missing record to nil so the
// evaluators can treat absence as "not pro". Store failures propagate.
func (s *Service) lookup(ctx context.Context, userID string) (*domain.Subscription, error) {
	sub, err := s.dal.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return sub, nil
}
