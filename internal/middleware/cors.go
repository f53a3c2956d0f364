package middleware

import (
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/gurkanbulca/doapi/internal/config"
)

// CORS answers preflight requests and adds Access-Control-Allow-* headers
// for allowed origins. Each list may contain config.AllowAll; an empty
// origin list allows no origin. Header names compare case-insensitively.
func CORS(cfg config.CORSConfig) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(corsConfig(cfg))
}

func corsConfig(cfg config.CORSConfig) echomw.CORSConfig {
	out := echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: cfg.AllowedMethods,
		MaxAge:       600,
	}
	if len(cfg.AllowedOrigins) == 0 {
		out.AllowOriginFunc = func(string) (bool, error) { return false, nil }
	}
	if len(cfg.AllowedMethods) == 0 || slices.Contains(cfg.AllowedMethods, config.AllowAll) {
		out.AllowMethods = echomw.DefaultCORSConfig.AllowMethods
	}
	// Leaving AllowHeaders empty makes echo reflect the requested headers.
	if !slices.Contains(cfg.AllowedHeaders, config.AllowAll) {
		out.AllowHeaders = make([]string, 0, len(cfg.AllowedHeaders))
		for _, h := range cfg.AllowedHeaders {
			out.AllowHeaders = append(out.AllowHeaders, strings.ToLower(h))
		}
	}
	return out
}
