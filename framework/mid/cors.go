package mid

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumplinhq/dumplin-api/framework/web"
)

// CORS sets permissive cross-origin headers and short-circuits preflight
// requests before they reach the handlers.
func CORS() web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			ctx.Header("Access-Control-Allow-Origin", "*")
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Api-Key, X-RevenueCat-Signature")

			if ctx.Request.Method == http.MethodOptions {
				return web.Respond(ctx, nil, http.StatusNoContent)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
