package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumplinhq/dumplin-api/framework/connection"
	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/logger"
	"github.com/dumplinhq/dumplin-api/subscription/dal"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
	"github.com/dumplinhq/dumplin-api/subscription/service"
)

var errInvalidQuota = errors.New("invalid quota parameters")

type Subscription struct {
	loggerProvider logger.Provider
	service        service.SubscriptionService
}

func NewSubscription(log logger.Provider, conn *connection.Connection) *Subscription {
	return &Subscription{
		loggerProvider: log,
		service:        service.NewSubscriptionService(log, conn),
	}
}

// GetStatus returns the entitlement summary for a user. The client reports
// its own usage counter through query parameters.
func (h *Subscription) GetStatus(ctx *gin.Context) error {
	userID := ctx.Param("userID")
	if userID == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	quota, err := quotaFromQuery(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	resp, err := h.service.GetStatus(ctx, userID, quota)
	if err != nil {
		return translateStoreError(err)
	}

	return web.Respond(ctx, resp, http.StatusOK)
}

// CheckMessageLimit gates one chat message against the weekly quota. A
// blocked user gets a 429 carrying the limit and an upgrade message.
func (h *Subscription) CheckMessageLimit(ctx *gin.Context) error {
	userID := ctx.Param("userID")
	if userID == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	var quota domain.QuotaWindow
	if err := ctx.ShouldBindJSON(&quota); err != nil {
		return web.NewRequestError(errInvalidQuota, http.StatusBadRequest)
	}

	resp, err := h.service.CheckMessageLimit(ctx, userID, quota)
	if err != nil {
		return translateStoreError(err)
	}

	if !resp.Allowed {
		return web.Respond(ctx, resp, http.StatusTooManyRequests)
	}

	return web.Respond(ctx, resp, http.StatusOK)
}

func quotaFromQuery(ctx *gin.Context) (domain.QuotaWindow, error) {
	var quota domain.QuotaWindow

	if raw := ctx.Query("message_count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			return quota, errInvalidQuota
		}

		quota.MessageCount = count
	}

	if raw := ctx.Query("week_start_ms"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return quota, errInvalidQuota
		}

		quota.WindowStartMs = &ms
	}

	return quota, nil
}

// translateStoreError maps store failures to transport failures. There is no
// safe default to fabricate for a read that never completed.
func translateStoreError(err error) error {
	if errors.Is(err, dal.ErrStoreTimeout) || errors.Is(err, dal.ErrStoreUnavailable) {
		return web.NewRequestError(err, http.StatusServiceUnavailable)
	}

	return web.NewRequestError(err, http.StatusInternalServerError)
}
