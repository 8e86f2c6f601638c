package idempotency

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	sharederrors "github.com/ordermesh/inventory-api/internal/shared/errors"
)

// HeaderName is the request header carrying the caller's token.
const HeaderName = "Idempotency-Key"

const contextKey = "idempotency.key"

// Middleware guards a route with the duplicate-submission check. A missing
// token is rejected with 400, a reused one with 409; only the first request
// per token continues down the handler chain.
func Middleware(store Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(HeaderName))
		if token == "" {
			sharederrors.Respond(c, sharederrors.ErrBadRequest.
				WithDetail("missing required Idempotency-Key header"))
			c.Abort()
			return
		}
		if err := store.PutIfAbsent(c.Request.Context(), token); err != nil {
			if errors.Is(err, ErrDuplicateKey) {
				if logger != nil {
					logger.Info("duplicate order submission rejected", slog.String("idempotency_key", token))
				}
				sharederrors.Respond(c, sharederrors.ErrConflict.
					WithDetail("duplicate submission: this Idempotency-Key was already used").
					WithExtension("idempotencyKey", token))
				c.Abort()
				return
			}
			if logger != nil {
				logger.Error("idempotency store failure", slog.String("error", err.Error()))
			}
			sharederrors.Respond(c, sharederrors.ErrInternal.
				WithDetail("idempotency check unavailable"))
			c.Abort()
			return
		}
		c.Set(contextKey, token)
		c.Next()
	}
}

// KeyFromContext returns the validated token stashed by the middleware.
func KeyFromContext(c *gin.Context) string {
	if value, ok := c.Get(contextKey); ok {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return ""
}
