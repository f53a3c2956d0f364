package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/gurkanbulca/doapi/internal/config"
)

func newCORSApp(cfg config.CORSConfig) *echo.Echo {
	e := echo.New()
	e.Use(CORS(cfg))
	e.GET("/lists", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func preflight(origin, method, headers string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, "/lists", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, method)
	if headers != "" {
		req.Header.Set(echo.HeaderAccessControlRequestHeaders, headers)
	}
	return req
}

func TestCORS_Preflight(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.CORSConfig
		origin      string
		reqHeaders  string
		wantOrigin  string
		wantHeaders string
		wantMethods string
	}{
		{
			name:        "allow all",
			cfg:         config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"*"}, AllowedHeaders: []string{"*"}},
			origin:      "https://app.example",
			reqHeaders:  "content-type,x-request-id",
			wantOrigin:  "*",
			wantHeaders: "content-type,x-request-id",
			wantMethods: "GET,HEAD,PUT,PATCH,POST,DELETE",
		},
		{
			name:        "explicit lists",
			cfg:         config.CORSConfig{AllowedOrigins: []string{"https://app.example"}, AllowedMethods: []string{"GET", "POST"}, AllowedHeaders: []string{"Content-Type"}},
			origin:      "https://app.example",
			reqHeaders:  "content-type",
			wantOrigin:  "https://app.example",
			wantHeaders: "content-type",
			wantMethods: "GET,POST",
		},
		{
			name:   "origin not in list",
			cfg:    config.CORSConfig{AllowedOrigins: []string{"https://app.example"}, AllowedMethods: []string{"*"}},
			origin: "https://evil.example",
		},
		{
			name:   "no origins allowed",
			cfg:    config.CORSConfig{AllowedMethods: []string{"*"}},
			origin: "https://app.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newCORSApp(tt.cfg).ServeHTTP(rec, preflight(tt.origin, http.MethodPost, tt.reqHeaders))

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			assert.Equal(t, tt.wantHeaders, rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
			assert.Equal(t, tt.wantMethods, rec.Header().Get(echo.HeaderAccessControlAllowMethods))
		})
	}
}

func TestCORS_SimpleRequest(t *testing.T) {
	e := newCORSApp(config.CORSConfig{AllowedOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORS_NoOriginIsNotRejected(t *testing.T) {
	e := newCORSApp(config.CORSConfig{AllowedOrigins: []string{"https://app.example"}})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lists", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
