package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taplejung/menu-system/internal/api/middleware"
	"github.com/taplejung/menu-system/internal/core/domain"
)

// ctxSession returns the session attached by the LoadSession middleware. The
// guards normally reject anonymous calls first; this is the fast-fail for
// routes wired without them.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.Session(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return sess, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}
