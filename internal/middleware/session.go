package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/gurkanbulca/doapi/internal/logger"
	"github.com/gurkanbulca/doapi/internal/repository"
)

const sessionKey = "session"

// ErrNoSession is returned by SessionFrom outside the Session middleware.
var ErrNoSession = errors.New("no session attached to request")

// Session opens a unit of work before the handler runs and closes it after:
// committed when the handler succeeds, rolled back on any error or panic.
// Handlers that write a body commit first through SessionFrom(c).Commit so
// a failed commit can still become an error response.
func Session(sessions repository.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			begun, err := sessions.Begin(ctx)
			if err != nil {
				return err
			}
			sess := &requestSession{Session: begun}
			defer func() {
				// No-op once committed.
				if err := sess.Rollback(); err != nil {
					logger.ErrorLog(ctx, "rollback session: "+err.Error())
				}
			}()

			c.Set(sessionKey, sess)
			if err := next(c); err != nil {
				return err
			}
			return sess.Commit()
		}
	}
}

// requestSession commits at most once per request.
type requestSession struct {
	repository.Session
	committed bool
}

func (s *requestSession) Commit() error {
	if s.committed {
		return nil
	}
	s.committed = true
	return s.Session.Commit()
}

// SessionFrom returns the session the Session middleware attached to c.
func SessionFrom(c echo.Context) (repository.Session, error) {
	sess, ok := c.Get(sessionKey).(repository.Session)
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}
