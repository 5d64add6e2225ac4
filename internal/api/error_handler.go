package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/pkg/logger"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, logger.FromContext(c.Request().Context(), log), c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, guards, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError && he.Internal != nil {
			log.Error().Err(he.Internal).Str("method", c.Request().Method).Str("path", c.Path()).Msg("request failed")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. A *domain.Error carries
	// the message to show; a bare sentinel falls back to a fixed one.
	code, fallback := 0, ""
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		code, fallback = http.StatusBadRequest, "bad request"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionNotFound):
		code, fallback = http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		code, fallback = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		code, fallback = http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrConflict):
		code, fallback = http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrNotFound):
		code, fallback = http.StatusNotFound, "not found"
	}
	if code != 0 {
		var de *domain.Error
		if errors.As(err, &de) {
			return code, de.Message
		}
		return code, fallback
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
