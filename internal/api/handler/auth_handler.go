package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/api/middleware"
	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      *middleware.SessionCookie
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie *middleware.SessionCookie, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

// Login authenticates a staff member and sets the session cookie.
//
// @Summary      Staff login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Warn().Str("email", req.Email).Str("remote_ip", c.RealIP()).Msg("login failed")
		}
		return err
	}

	if err := h.cookie.Write(c, res.Session.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Success: true, User: toUserResponse(res.User)})
}

// Logout destroys the caller's session, if any, and clears the cookie.
//
// @Summary      Staff logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := h.cookie.Token(c)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Logout failed")
	}
	h.cookie.Clear(c)
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Logged out successfully"})
}

// CurrentUser returns the account behind the session.
//
// @Summary      Current staff user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	user, err := h.authService.CurrentUser(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword replaces the caller's own password.
//
// @Summary      Change own password
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/users/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), sess, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Password changed successfully"})
}
