package handler

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gurkanbulca/doapi/internal/middleware"
	"github.com/gurkanbulca/doapi/internal/models"
	"github.com/gurkanbulca/doapi/internal/repository"
	"github.com/gurkanbulca/doapi/internal/service"
)

// todoService builds a service over the store of the request's session.
func todoService(c echo.Context) (*service.TodoService, error) {
	sess, err := middleware.SessionFrom(c)
	if err != nil {
		return nil, err
	}
	return service.NewTodoService(sess.Store()), nil
}

// respond commits the request's session and only then writes v with
// status. A nil v writes no body.
func respond(c echo.Context, status int, v any) error {
	sess, err := middleware.SessionFrom(c)
	if err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	if v == nil {
		return c.NoContent(status)
	}
	return c.JSON(status, v)
}

// pathID reads the :id segment. Anything but a positive integer cannot name
// a record, so it is reported as not found.
func pathID(c echo.Context, entity string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &repository.NotFoundError{Entity: entity}
	}
	return id, nil
}

// decodeBody decodes a JSON body into v. An empty body decodes as {} so
// missing-field checks report the field rather than the body. Trailing data
// after the value is malformed.
func decodeBody(c echo.Context, v any) error {
	body := c.Request().Body
	if body == nil {
		return nil
	}
	dec := json.NewDecoder(body)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		// The body must hold exactly one JSON value.
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return &MalformedJSONError{Err: errors.New("unexpected data after top-level value")}
		}
		return nil
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &MalformedJSONError{Err: err}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return &models.ValidationError{Field: typeErr.Field, Reason: "must be " + jsonKind(typeErr)}
	default:
		// Well-formed JSON of the wrong shape, such as an array or a bad timestamp.
		return &models.ValidationError{Field: "body", Reason: err.Error()}
	}
}

func jsonKind(err *json.UnmarshalTypeError) string {
	if err.Type == reflect.TypeFor[time.Time]() {
		return "an RFC 3339 timestamp"
	}
	switch err.Type.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	default:
		return "of type " + err.Type.String()
	}
}

// queryParser converts one raw query parameter to a filter value.
type queryParser func(string) (any, error)

// queryFilter builds an equality Filter from the query parameters named in
// parsers. Other parameters are ignored.
func queryFilter(c echo.Context, parsers map[string]queryParser) (repository.Filter, error) {
	params := c.QueryParams()
	f := repository.Filter{}
	for name, parse := range parsers {
		if !params.Has(name) {
			continue
		}
		v, err := parse(params.Get(name))
		if err != nil {
			return nil, &models.ValidationError{Field: name, Reason: err.Error()}
		}
		f[name] = v
	}
	return f, nil
}

func parseInt64(s string) (any, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errors.New("must be an integer")
	}
	return v, nil
}

func parseInt(s string) (any, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, errors.New("must be an integer")
	}
	return v, nil
}

func parseBool(s string) (any, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, errors.New("must be true or false")
	}
	return v, nil
}

func parseString(s string) (any, error) {
	return s, nil
}
