package handler

import (
	"net/http"
	"strconv"

	"itemtracker/internal/usecase"
	"itemtracker/internal/validator"

	"github.com/labstack/echo/v4"
)

// /items
type ItemHandler struct {
	uc *usecase.ItemUsecase
}

// DI
func NewItemHandler(uc *usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	items := e.Group("/items")

	items.GET("", h.list)
	items.POST("", h.create)
	items.GET("/:id", h.detail)
	items.PUT("/:id", h.update)
	items.PATCH("/:id", h.update)
	items.DELETE("/:id", h.delete)
}

func (h *ItemHandler) list(c echo.Context) error {
	in := usecase.ListItemsInput{Limit: usecase.DefaultLimit}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &in); err != nil {
		return validationError(c, "invalid query parameters")
	}
	if err := c.Validate(&in); err != nil {
		return validationError(c, validator.Reason(err))
	}

	out, err := h.uc.ListItems(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) create(c echo.Context) error {
	var in usecase.CreateItemInput
	if err := c.Bind(&in); err != nil {
		return validationError(c, bindMessage(err))
	}
	if err := c.Validate(&in); err != nil {
		return validationError(c, validator.Reason(err))
	}

	it, err := h.uc.CreateItem(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *ItemHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return validationError(c, "invalid id")
	}

	it, found, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !found {
		return writeError(c, usecase.NewNotFoundError("Item not found"))
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return validationError(c, "invalid id")
	}

	patch, err := decodePatch(c.Request().Body)
	if err != nil {
		return validationError(c, err.Error())
	}

	it, err := h.uc.UpdateItem(c.Request().Context(), id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return validationError(c, "invalid id")
	}

	if err := h.uc.DeleteItem(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Item deleted successfully"})
}

func bindMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		if s, ok := he.Message.(string); ok {
			return s
		}
	}
	return "invalid body"
}
