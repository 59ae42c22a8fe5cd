package handler

import (
	"net/http"

	"itemtracker/internal/domain/model"
	"itemtracker/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const apiVersion = "1.0.0"

// /, /health and /statuses
type HealthHandler struct {
	uc *usecase.HealthUsecase
}

func NewHealthHandler(uc *usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.root)
	e.GET("/health", h.health)
	e.GET("/statuses", h.statuses)
}

func (h *HealthHandler) root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to Item Tracker API!",
		"version": apiVersion,
	})
}

// Always 200; a dead database shows up as "degraded".
func (h *HealthHandler) health(c echo.Context) error {
	st, err := h.uc.Check(c.Request().Context())
	if err != nil {
		c.Logger().Warnj(log.JSON{"request_id": requestID(c), "health": st.Status, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *HealthHandler) statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"statuses": model.ItemStatuses})
}
