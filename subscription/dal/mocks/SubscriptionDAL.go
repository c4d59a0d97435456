package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dumplinhq/dumplin-api/subscription/dal"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

type SubscriptionDAL struct {
	mock.Mock
}

func (m *SubscriptionDAL) GetByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)

	var sub *domain.Subscription
	if args.Get(0) != nil {
		sub = args.Get(0).(*domain.Subscription)
	}

	return sub, args.Error(1)
}

func (m *SubscriptionDAL) GetByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error) {
	args := m.Called(ctx, customerID)

	var sub *domain.Subscription
	if args.Get(0) != nil {
		sub = args.Get(0).(*domain.Subscription)
	}

	return sub, args.Error(1)
}

func (m *SubscriptionDAL) Upsert(ctx context.Context, userID string, patch map[string]interface{}) error {
	args := m.Called(ctx, userID, patch)
	return args.Error(0)
}

func (m *SubscriptionDAL) UpsertWith(ctx context.Context, userID string, fn dal.UpdateFn) error {
	args := m.Called(ctx, userID, fn)
	return args.Error(0)
}
