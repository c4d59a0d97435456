package service

import (
	"context"

	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

//go:generate mockery --name SubscriptionService --output=./mocks
type SubscriptionService interface {
	HandleWebhookEvent(ctx context.Context, event *domain.BillingEvent) error
	GetStatus(ctx context.Context, userID string, quota domain.QuotaWindow) (*domain.StatusResponse, error)
	CheckMessageLimit(ctx context.Context, userID string, quota domain.QuotaWindow) (*domain.MessageLimitResponse, error)
}
