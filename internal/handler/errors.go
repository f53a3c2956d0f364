package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gurkanbulca/doapi/internal/logger"
	"github.com/gurkanbulca/doapi/internal/middleware"
	"github.com/gurkanbulca/doapi/internal/models"
	"github.com/gurkanbulca/doapi/internal/repository"
)

// Error codes carried in ErrorResponse.Error.
const (
	CodeValidation    = "validation_error"
	CodeMalformedJSON = "malformed_json"
	CodeNotFound      = "not_found"
	CodeInvalidFilter = "invalid_filter"
	CodeInternal      = "internal_error"
)

// ErrMalformedJSON matches every *MalformedJSONError via errors.Is.
var ErrMalformedJSON = errors.New("malformed json")

// MalformedJSONError reports a request body that is not valid JSON.
type MalformedJSONError struct {
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed json: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

func (e *MalformedJSONError) Is(target error) bool {
	return target == ErrMalformedJSON
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorHandler translates handler errors into status codes and bodies.
// Internal errors are logged and answered with a generic message.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := translate(err)
		if status >= http.StatusInternalServerError {
			client := middleware.GetClientInfoFromContext(c.Request().Context())
			logger.FromContext(c.Request().Context()).Error().Err(err).
				Str("path", c.Request().URL.Path).
				Str("ip", client.IPAddress).
				Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.FromContext(c.Request().Context()).Error().Err(writeErr).Msg("write error response")
		}
	}
}

func translate(err error) (int, ErrorResponse) {
	var (
		validation *models.ValidationError
		notFound   *repository.NotFoundError
		httpErr    *echo.HTTPError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, ErrorResponse{Error: CodeValidation, Message: validation.Error(), Field: validation.Field}
	case errors.Is(err, ErrMalformedJSON):
		return http.StatusBadRequest, ErrorResponse{Error: CodeMalformedJSON, Message: err.Error()}
	case errors.As(err, &notFound):
		return http.StatusNotFound, ErrorResponse{Error: CodeNotFound, Message: notFound.Error()}
	case errors.Is(err, repository.ErrInvalidFilter):
		return http.StatusBadRequest, ErrorResponse{Error: CodeInvalidFilter, Message: err.Error()}
	case errors.As(err, &httpErr):
		return httpErr.Code, ErrorResponse{Error: statusCode(httpErr.Code), Message: fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: CodeInternal, Message: "internal server error"}
	}
}

// statusCode turns "Method Not Allowed" into "method_not_allowed".
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return CodeInternal
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
