// internal/middleware/context_extractor.go
package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gurkanbulca/doapi/internal/logger"
)

// ContextKeys for storing request metadata
type ContextKey string

const (
	ContextKeyIPAddress ContextKey = "ip_address"
	ContextKeyUserAgent ContextKey = "user_agent"
	ContextKeyRequestID ContextKey = "request_id"
)

// RequestID keeps an inbound X-Request-ID or generates a UUID, and echoes it
// on the response.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// ContextExtractor copies client metadata into the request context and
// attaches a logger tagged with the request id. It must run after RequestID.
func ContextExtractor(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			ctx := req.Context()
			ctx = context.WithValue(ctx, ContextKeyIPAddress, c.RealIP())
			ctx = context.WithValue(ctx, ContextKeyUserAgent, req.UserAgent())
			ctx = context.WithValue(ctx, ContextKeyRequestID, requestID)
			ctx = logger.WithContext(ctx, base.With().Str("request_id", requestID).Logger())

			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// ClientInfo is the request metadata ContextExtractor recorded.
type ClientInfo struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// GetClientInfoFromContext extracts all client information from context
func GetClientInfoFromContext(ctx context.Context) *ClientInfo {
	return &ClientInfo{
		IPAddress: stringValue(ctx, ContextKeyIPAddress),
		UserAgent: stringValue(ctx, ContextKeyUserAgent),
		RequestID: stringValue(ctx, ContextKeyRequestID),
	}
}

func stringValue(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
