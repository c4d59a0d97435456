package dal

import (
	"context"

	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

// UpdateFn computes a merge patch from the current record inside a
// transaction. current is nil when no record exists yet.
type UpdateFn func(current *domain.Subscription) (map[string]interface{}, error)

//go:generate mockery --name SubscriptionDAL --output=./mocks
type SubscriptionDAL interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Subscription, error)
	GetByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error)
	Upsert(ctx context.Context, userID string, patch map[string]interface{}) error
	UpsertWith(ctx context.Context, userID string, fn UpdateFn) error
}
