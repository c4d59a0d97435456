package service

import (
	"context"
	"time"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/framework/connection"
	"github.com/dumplinhq/dumplin-api/logger"
	"github.com/dumplinhq/dumplin-api/subscription/dal"
)

// Service reconciles billing webhook events into subscription records and
// answers entitlement and quota queries over them.
type Service struct {
	loggerProvider logger.Provider
	dal            dal.SubscriptionDAL
	weeklyLimit    int
	now            func() time.Time
}

func NewSubscriptionService(log logger.Provider, conn *connection.Connection) *Service {
	subscriptionDAL := dal.NewSubscriptionFirestoreWithClient(log, conn.Firestore)

	return NewSubscriptionServiceWithDAL(log, subscriptionDAL)
}

func NewSubscriptionServiceWithDAL(log logger.Provider, subscriptionDAL dal.SubscriptionDAL) *Service {
	return &Service{
		loggerProvider: log,
		dal:            subscriptionDAL,
		weeklyLimit:    common.FreeTierWeeklyMessageLimit,
		now:            time.Now,
	}
}

func (s *Service) logger(ctx context.Context) logger.ILogger {
	return s.loggerProvider(ctx)
}
