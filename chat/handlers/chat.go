package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	chatdomain "github.com/dumplinhq/dumplin-api/chat/domain"
	chatservice "github.com/dumplinhq/dumplin-api/chat/service"
	"github.com/dumplinhq/dumplin-api/framework/connection"
	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/logger"
	subdomain "github.com/dumplinhq/dumplin-api/subscription/domain"
	subservice "github.com/dumplinhq/dumplin-api/subscription/service"
)

var errInvalidChatRequest = errors.New("invalid chat request")

type Chat struct {
	loggerProvider logger.Provider
	chat           chatservice.ChatService
	subscriptions  subservice.SubscriptionService
}

func NewChat(log logger.Provider, conn *connection.Connection) *Chat {
	return &Chat{
		loggerProvider: log,
		chat:           chatservice.NewChatService(log),
		subscriptions:  subservice.NewSubscriptionService(log, conn),
	}
}

// SendMessage gates the message against the weekly quota before handing it
// to the chat backend. A blocked user gets the rate limit payload, not an
// error response.
func (h *Chat) SendMessage(ctx *gin.Context) error {
	var req chatdomain.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(errInvalidChatRequest, http.StatusBadRequest)
	}

	quota := subdomain.QuotaWindow{
		MessageCount:  req.MessageCount,
		WindowStartMs: req.WeekStartMs,
	}

	limit, err := h.subscriptions.CheckMessageLimit(ctx, req.UserID, quota)
	if err != nil {
		return translateStoreError(err)
	}

	if !limit.Allowed {
		return web.Respond(ctx, limit, http.StatusTooManyRequests)
	}

	resp, err := h.chat.ProcessMessage(ctx, &req)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	resp.RemainingMessages = limit.Remaining

	return web.Respond(ctx, resp, http.StatusOK)
}

// GetMessageLimit reports the current quota standing without consuming it.
func (h *Chat) GetMessageLimit(ctx *gin.Context) error {
	userID := ctx.Param("userID")
	if userID == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	quota, err := quotaFromQuery(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	resp, err := h.subscriptions.CheckMessageLimit(ctx, userID, quota)
	if err != nil {
		return translateStoreError(err)
	}

	return web.Respond(ctx, resp, http.StatusOK)
}
