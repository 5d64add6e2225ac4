package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// RequireAuthenticated rejects requests without a session with 401.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess := Session(c); sess == nil || sess.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			return next(c)
		}
	}
}

// RequireManager rejects anonymous requests with 401 and non-manager sessions
// with 403. The role is taken from the session snapshot, not the store.
func RequireManager() echo.MiddlewareFunc {
	return requireRole("Manager access required", domain.RoleManager)
}

func requireRole(msg string, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := Session(c)
			if sess == nil || sess.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if _, ok := allowed[sess.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}
