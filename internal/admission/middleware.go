package admission

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// deniedBody is the fixed rejection payload; field order is part of the
// contract clients parse.
type deniedBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Middleware gates every request through the token-bucket store before the
// handler chain continues. A store failure fails open: an unreachable
// shared store must not take the API down with it.
func Middleware(cfg Config, store Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || store == nil {
			c.Next()
			return
		}
		class, ok := Classify(c.Request.URL.Path)
		if !ok {
			c.Next()
			return
		}
		limit, ok := cfg.LimitFor(class)
		if !ok || limit.Requests <= 0 || limit.WindowSeconds <= 0 {
			c.Next()
			return
		}

		clientIP := clientIPFromRequest(c.Request)
		key := fmt.Sprintf("%s:%s:%d:%d", clientIP, class, limit.Requests, limit.WindowSeconds)
		allowed, err := store.Allow(c.Request.Context(), key, limit)
		if err != nil {
			if logger != nil {
				logger.Warn("admission store unavailable, allowing request",
					slog.String("class", string(class)),
					slog.String("error", err.Error()),
				)
			}
			c.Next()
			return
		}
		if !allowed {
			if logger != nil {
				logger.Warn("request rejected by admission",
					slog.String("client_ip", clientIP),
					slog.String("class", string(class)),
					slog.Int("limit", limit.Requests),
					slog.Int("window_seconds", limit.WindowSeconds),
				)
			}
			c.Header("Retry-After", strconv.Itoa(limit.WindowSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, deniedBody{
				Error:   "Too Many Requests",
				Message: cfg.Message,
				Status:  http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}

// clientIPFromRequest resolves the caller identity: first hop of
// X-Forwarded-For, then X-Real-IP, then the raw peer address.
func clientIPFromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
