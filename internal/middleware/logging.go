package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger writes one line per response with scheme, method, path,
// status, host and user agent. Errors are rendered by the error handler
// first so the logged status is the one the client saw.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURIPath:   true,
		LogMethod:    true,
		LogHost:      true,
		LogUserAgent: true,
		LogRequestID: true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("scheme", c.Scheme()).
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Str("host", v.Host).
				Str("user_agent", v.UserAgent).
				Str("request_id", v.RequestID).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
