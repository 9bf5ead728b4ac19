package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gopages/internal/metrics"
)

const requestIDHeader = "X-Request-Id"

// RequestID reuses the caller's X-Request-Id or mints one, echoes it back and
// attaches a request-scoped logger to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		logger := log.Logger.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

// RequestLogger logs one line per request with its status and latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger := zerolog.Ctx(c.Request.Context())
		ev := logger.Info()
		if c.Writer.Status() >= 400 {
			ev = logger.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	}
}

// Recovery turns a panic anywhere in the chain into the generic failure
// envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Str("panic", fmt.Sprint(recovered)).
			Msg("handler panicked")
		code, env := Failure(fmt.Errorf("panic: %v", recovered))
		metrics.RecordRequest(env.Status)
		c.AbortWithStatusJSON(code, env)
	})
}
