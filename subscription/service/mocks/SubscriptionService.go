package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

type SubscriptionService struct {
	mock.Mock
}

func (m *SubscriptionService) HandleWebhookEvent(ctx context.Context, event *domain.BillingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *SubscriptionService) GetStatus(ctx context.Context, userID string, quota domain.QuotaWindow) (*domain.StatusResponse, error) {
	args := m.Called(ctx, userID, quota)

	var resp *domain.StatusResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*domain.StatusResponse)
	}

	return resp, args.Error(1)
}

func (m *SubscriptionService) CheckMessageLimit(ctx context.Context, userID string, quota domain.QuotaWindow) (*domain.MessageLimitResponse, error) {
	args := m.Called(ctx, userID, quota)

	var resp *domain.MessageLimitResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*domain.MessageLimitResponse)
	}

	return resp, args.Error(1)
}
