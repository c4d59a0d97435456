package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/framework/connection"
	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/logger"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
	"github.com/dumplinhq/dumplin-api/subscription/service"
)

const signatureHeader = "X-RevenueCat-Signature"

var errInvalidSignature = errors.New("invalid webhook signature")

// webhookAck is the body returned to the billing processor. Processing
// failures are reported inside a 200 response on purpose: the processor
// redelivers on non-2xx, and a poison event would otherwise retry forever.
type webhookAck struct {
	Status    string `json:"status"`
	EventType string `json:"event_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Webhook struct {
	loggerProvider logger.Provider
	service        service.SubscriptionService
}

func NewWebhook(log logger.Provider, conn *connection.Connection) *Webhook {
	return &Webhook{
		loggerProvider: log,
		service:        service.NewSubscriptionService(log, conn),
	}
}

// HandleRevenueCatWebhook verifies and applies one billing event delivery.
// The signature covers the raw body, so the body is read before any parsing.
func (h *Webhook) HandleRevenueCatWebhook(ctx *gin.Context) error {
	l := h.loggerProvider(ctx)

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if common.RevenueCatWebhookSecret != "" {
		signature := ctx.GetHeader(signatureHeader)
		if !common.VerifySha256HMAC(string(body), signature, []byte(common.RevenueCatWebhookSecret)) {
			l.Warningf("rejected webhook with bad signature")
			return web.NewRequestError(errInvalidSignature, http.StatusUnauthorized)
		}
	} else {
		l.Warningf("REVENUECAT_WEBHOOK_SECRET not configured, accepting unsigned webhook")
	}

	event, err := domain.ParseBillingEvent(body)
	if err != nil {
		l.Errorf("failed to parse webhook payload: %s", err)
		return web.Respond(ctx, webhookAck{Status: "error", Message: err.Error()}, http.StatusOK)
	}

	if err := h.service.HandleWebhookEvent(ctx, event); err != nil {
		l.Errorf("failed to process %s webhook: %s", event.Type, err)
		return web.Respond(ctx, webhookAck{Status: "error", Message: err.Error()}, http.StatusOK)
	}

	return web.Respond(ctx, webhookAck{Status: "ok", EventType: string(event.Type)}, http.StatusOK)
}
