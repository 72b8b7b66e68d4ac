package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is where the per-request correlation ID lives in the
// Gin context; handlers include it when logging server-side failures.
const ContextKeyRequestID = "request_id"

// RequestID assigns each request a correlation ID. A caller-supplied
// X-Request-ID is trusted so IDs survive a frontend proxy hop; otherwise a
// fresh one is generated. The ID is echoed back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger writes one line per completed request. Liveness and readiness
// checks are skipped; they fire constantly and drown out real traffic.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		if c.Request.URL.Path == "/healthz" || c.Request.URL.Path == "/readyz" {
			return
		}

		log.Printf("request_id=%s method=%s path=%s status=%d latency=%s client=%s",
			c.GetString(ContextKeyRequestID),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
