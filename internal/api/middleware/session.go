package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
)

// ContextKeySession is the echo context key holding the *domain.Session.
const ContextKeySession = "session"

// LoadSession resolves the session cookie against the store and attaches the
// session to the echo context and the request context. Requests without a
// valid session pass through anonymously; the guards decide what to reject.
func LoadSession(store ports.SessionStore, cookie *SessionCookie, sliding bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := cookie.Token(c)
			if !ok {
				return next(c)
			}

			req := c.Request()
			sess, err := store.Get(req.Context(), token)
			if errors.Is(err, domain.ErrSessionNotFound) {
				cookie.Clear(c)
				return next(c)
			}
			if err != nil {
				return err
			}

			c.Set(ContextKeySession, sess)
			c.SetRequest(req.WithContext(domain.ContextWithSession(req.Context(), sess)))

			if sliding {
				if err := cookie.Write(c, token); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

// Session returns the session attached by LoadSession, or nil.
func Session(c echo.Context) *domain.Session {
	sess, _ := c.Get(ContextKeySession).(*domain.Session)
	return sess
}
