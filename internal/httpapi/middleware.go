package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationIDHeader is propagated on every request and response so log
// lines across services can be joined.
const CorrelationIDHeader = "X-Correlation-ID"

const correlationIDKey = "httpapi.correlation_id"

// CorrelationID reuses the caller's correlation identifier or mints one.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(CorrelationIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)
		c.Next()
	}
}

// CorrelationIDFromContext returns the identifier stashed by CorrelationID.
func CorrelationIDFromContext(c *gin.Context) string {
	if value, ok := c.Get(correlationIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
