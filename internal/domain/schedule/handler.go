package schedule

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dralina/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(admin *echo.Group) {
	role := auth.RequireRole("admin")
	admin.GET("/doctors/:id/schedules", h.ListByDoctor, role)
	admin.POST("/schedules", h.CreateSchedule, role)
	admin.PUT("/schedules/:id", h.UpdateSchedule, role)
	admin.DELETE("/schedules/:id", h.DeactivateSchedule, role)
}

func (h *Handler) ListByDoctor(c echo.Context) error {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}
	items, err := h.svc.ListByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*WorkSchedule{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateSchedule(c echo.Context) error {
	var ws WorkSchedule
	if err := c.Bind(&ws); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateSchedule(c.Request().Context(), &ws); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ws)
}

func (h *Handler) UpdateSchedule(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var ws WorkSchedule
	if err := c.Bind(&ws); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ws.ID = id
	if err := h.svc.UpdateSchedule(c.Request().Context(), &ws); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ws)
}

func (h *Handler) DeactivateSchedule(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeactivateSchedule(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "schedule not found")
	}
	return c.NoContent(http.StatusNoContent)
}
