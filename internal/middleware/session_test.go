package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/doapi/internal/repository"
)

type recordingSession struct {
	store     repository.Store
	commits   int
	rollbacks int
}

func (s *recordingSession) Store() repository.Store { return s.store }
func (s *recordingSession) Commit() error           { s.commits++; return nil }
func (s *recordingSession) Rollback() error         { s.rollbacks++; return nil }

type recordingSessions struct {
	opened []*recordingSession
	err    error
}

func (s *recordingSessions) Begin(ctx context.Context) (repository.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	sess := &recordingSession{store: repository.NewMemoryStore()}
	s.opened = append(s.opened, sess)
	return sess, nil
}

func newSessionApp(sessions repository.Sessions, h echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.Use(Session(sessions))
	e.GET("/", h)
	return e
}

func TestSession_CommitsOnSuccess(t *testing.T) {
	sessions := &recordingSessions{}
	e := newSessionApp(sessions, func(c echo.Context) error {
		sess, err := SessionFrom(c)
		require.NoError(t, err)
		assert.NotNil(t, sess.Store())
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, sessions.opened, 1)
	assert.Equal(t, 1, sessions.opened[0].commits)
	// The deferred rollback still runs; it is a no-op after commit.
	assert.Equal(t, 1, sessions.opened[0].rollbacks)
}

func TestSession_CommitsOnce(t *testing.T) {
	sessions := &recordingSessions{}
	e := newSessionApp(sessions, func(c echo.Context) error {
		sess, err := SessionFrom(c)
		require.NoError(t, err)
		require.NoError(t, sess.Commit())
		require.NoError(t, sess.Commit())
		return c.NoContent(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, sessions.opened, 1)
	assert.Equal(t, 1, sessions.opened[0].commits)
}

func TestSession_RollsBackOnError(t *testing.T) {
	sessions := &recordingSessions{}
	e := newSessionApp(sessions, func(c echo.Context) error {
		return errors.New("handler failed")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, sessions.opened, 1)
	assert.Zero(t, sessions.opened[0].commits)
	assert.Equal(t, 1, sessions.opened[0].rollbacks)
}

func TestSession_RollsBackOnPanic(t *testing.T) {
	sessions := &recordingSessions{}
	mw := Session(sessions)
	h := mw(func(c echo.Context) error { panic("kaboom") })

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Panics(t, func() { _ = h(c) })

	require.Len(t, sessions.opened, 1)
	assert.Zero(t, sessions.opened[0].commits)
	assert.Equal(t, 1, sessions.opened[0].rollbacks)
}

func TestSession_BeginFails(t *testing.T) {
	sessions := &recordingSessions{err: errors.New("database down")}
	called := false
	e := newSessionApp(sessions, func(c echo.Context) error {
		called = true
		return nil
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSessionFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := SessionFrom(c)
	assert.ErrorIs(t, err, ErrNoSession)
}
