package mid

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/logger"
)

const apiKeyHeader = "X-Api-Key"

// Auth errors
var (
	ErrUnauthorized = errors.New("invalid or missing api key")
)

// AuthAPIKey middleware validates the shared-secret header on client-facing
// endpoints. When no key is configured all requests are accepted; this is
// development mode only and is logged on every request.
func AuthAPIKey() web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			l := logger.FromContext(ctx)

			if common.APIKey == "" {
				l.Warning("API_KEY not configured, accepting all requests")
				return handler(ctx)
			}

			key := ctx.Request.Header.Get(apiKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(common.APIKey)) != 1 {
				return web.NewRequestError(ErrUnauthorized, http.StatusUnauthorized)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
