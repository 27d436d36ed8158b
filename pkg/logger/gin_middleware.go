package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader заголовок для сквозного идентификатора запроса
const RequestIDHeader = "X-Request-ID"

// GinLoggerMiddleware пишет одну JSON строку на каждый HTTP запрос
// и прокидывает логгер с request_id в контекст запроса
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))

		c.Next()

		status := c.Writer.Status()

		event := Info()
		if status >= 500 {
			event = Error()
		} else if status >= 400 {
			event = Warn()
		}

		event = event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Str("remote_addr", c.ClientIP()).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Float64("duration_ms", float64(time.Since(start).Microseconds())/1000)

		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("HTTP request")
	}
}

func generateRequestID() string {
	return uuid.NewString()
}
