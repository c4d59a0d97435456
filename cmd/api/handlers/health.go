package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/framework/web"
)

type Health struct{}

func NewHealth() *Health {
	return &Health{}
}

// Root identifies the service for anyone probing the bare domain.
func (h *Health) Root(ctx *gin.Context) error {
	return web.Respond(ctx, gin.H{
		"service": common.GAEService,
		"version": common.GAEVersion,
		"status":  "ok",
	}, http.StatusOK)
}

// Check is the liveness probe. It is excluded from request logging.
func (h *Health) Check(ctx *gin.Context) error {
	return web.Respond(ctx, gin.H{"status": "healthy"}, http.StatusOK)
}
