package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/core/ports"
	"github.com/taplejung/menu-system/internal/infrastructure/menuimport"
)

const maxImportSize = 5 << 20

type MenuHandler struct {
	menuService ports.MenuService
	log         zerolog.Logger
}

func NewMenuHandler(menuService ports.MenuService, log zerolog.Logger) *MenuHandler {
	return &MenuHandler{menuService: menuService, log: log}
}

// PublicMenu returns the menu grouped by category.
//
// @Summary      Public menu
// @Tags         menu
// @Produce      json
// @Success      200  {object}  map[string][]domain.MenuItem
// @Failure      500  {object}  errorResponse
// @Router       /api/public/menu [get]
func (h *MenuHandler) PublicMenu(c echo.Context) error {
	menu, err := h.menuService.ListMenu(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list menu failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch menu")
	}
	return c.JSON(http.StatusOK, menu)
}

// Add creates a menu item.
//
// @Summary      Add menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      200   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/menu/add [post]
func (h *MenuHandler) Add(c echo.Context) error {
	in, err := bindMenuItem(c)
	if err != nil {
		return err
	}
	id, err := h.menuService.AddMenuItem(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createdResponse{Success: true, ID: id, Message: "Item added successfully"})
}

// Update replaces every field of a menu item.
//
// @Summary      Update menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Menu item id"
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/menu/update/{id} [put]
func (h *MenuHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	in, err := bindMenuItem(c)
	if err != nil {
		return err
	}
	if err := h.menuService.UpdateMenuItem(c.Request().Context(), id, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Item updated successfully"})
}

// Delete removes a menu item. Deleting a missing item succeeds.
//
// @Summary      Delete menu item
// @Tags         menu
// @Produce      json
// @Param        id   path      int  true  "Menu item id"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/menu/delete/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.menuService.DeleteMenuItem(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Item deleted successfully"})
}

// Import adds every row of an uploaded xlsx sheet, or none if any row is invalid.
//
// @Summary      Import menu items from xlsx
// @Tags         menu
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook: name, category, price, description, meat_type, spice_level"
// @Success      200   {object}  importResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/staff/menu/import [post]
func (h *MenuHandler) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxImportSize {
		return echo.NewHTTPError(http.StatusBadRequest, "file is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	inputs, err := menuimport.ParseXLSX(f)
	if err != nil {
		return err
	}
	n, err := h.menuService.ImportMenuItems(c.Request().Context(), inputs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, importResponse{Success: true, Count: n})
}

func bindMenuItem(c echo.Context) (ports.MenuItemInput, error) {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return ports.MenuItemInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.MenuItemInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.MenuItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		MeatType:    req.MeatType,
		SpiceLevel:  req.SpiceLevel,
	}, nil
}
