package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
)

// StaffHandler serves the manager-only staff account endpoints.
type StaffHandler struct {
	authService ports.AuthService
}

func NewStaffHandler(authService ports.AuthService) *StaffHandler {
	return &StaffHandler{authService: authService}
}

// List returns every staff account without password hashes.
//
// @Summary      List staff accounts
// @Tags         staff
// @Produce      json
// @Success      200  {array}   staffResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/users [get]
func (h *StaffHandler) List(c echo.Context) error {
	accounts, err := h.authService.ListStaff(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]staffResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toStaffResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}

// Add creates a staff account.
//
// @Summary      Add staff account
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body      addStaffRequest  true  "New account"
// @Success      200   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/users/add [post]
func (h *StaffHandler) Add(c echo.Context) error {
	var req addStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.authService.AddStaff(c.Request().Context(), ports.AddStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createdResponse{Success: true, ID: id, Message: "Staff user added successfully"})
}

// Delete removes a staff account other than the caller's own.
//
// @Summary      Delete staff account
// @Tags         staff
// @Produce      json
// @Param        id   path      int  true  "Staff account id"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/users/{id} [delete]
func (h *StaffHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.authService.DeleteStaff(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Staff user deleted successfully"})
}
