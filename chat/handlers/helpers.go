package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/subscription/dal"
	subdomain "github.com/dumplinhq/dumplin-api/subscription/domain"
)

func quotaFromQuery(ctx *gin.Context) (subdomain.QuotaWindow, error) {
	var quota subdomain.QuotaWindow

	if raw := ctx.Query("message_count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			return quota, errInvalidChatRequest
		}

		quota.MessageCount = count
	}

	if raw := ctx.Query("week_start_ms"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return quota, errInvalidChatRequest
		}

		quota.WindowStartMs = &ms
	}

	return quota, nil
}

func translateStoreError(err error) error {
	if errors.Is(err, dal.ErrStoreTimeout) || errors.Is(err, dal.ErrStoreUnavailable) {
		return web.NewRequestError(err, http.StatusServiceUnavailable)
	}

	return web.NewRequestError(err, http.StatusInternalServerError)
}
