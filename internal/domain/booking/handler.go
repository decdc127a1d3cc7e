package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dralina/clinic/internal/platform/auth"
	"github.com/dralina/clinic/internal/platform/token"
	"github.com/dralina/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, admin *echo.Group) {
	public.GET("/availability", h.Availability)
	public.POST("/bookings", h.CreateBooking)
	public.GET("/bookings/confirm/:token", h.ConfirmBooking)

	role := auth.RequireRole("admin")
	admin.GET("/appointments", h.ListAppointments, role)
	admin.POST("/appointments/:id/cancel", h.CancelAppointment, role)
	admin.POST("/appointments/:id/complete", h.CompleteAppointment, role)
}

type errorBody struct {
	Error string `json:"error"`
}

// Availability serves the public slot query. The error strings form the
// booking widget's contract and must stay stable.
func (h *Handler) Availability(c echo.Context) error {
	doctorStr := c.QueryParam("doctor_id")
	dateStr := c.QueryParam("date")
	serviceStr := c.QueryParam("service_id")
	if doctorStr == "" || dateStr == "" || serviceStr == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "missing fields"})
	}

	doctorID, err := strconv.ParseInt(doctorStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "missing fields"})
	}
	serviceID, err := strconv.ParseInt(serviceStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "missing fields"})
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid date format"})
	}

	slots, err := h.svc.AvailableSlots(c.Request().Context(), doctorID, date, serviceID)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return c.JSON(http.StatusNotFound, errorBody{Error: "service not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string][]string{"slots": slots})
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "missing fields"})
	}
	appt, err := h.svc.RequestBooking(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceNotFound):
			return c.JSON(http.StatusNotFound, errorBody{Error: "service not found"})
		case errors.Is(err, ErrSlotTaken):
			return c.JSON(http.StatusConflict, errorBody{Error: "schedule unavailable"})
		default:
			return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		}
	}
	return c.JSON(http.StatusCreated, appt)
}

func (h *Handler) ConfirmBooking(c echo.Context) error {
	appt, err := h.svc.Confirm(c.Request().Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid or expired token"})
		}
		return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)

	var filter ListFilter
	if v := c.QueryParam("doctor_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
		}
		filter.DoctorID = &id
	}
	if v := c.QueryParam("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date format")
		}
		filter.Date = &d
	}
	filter.Status = Status(c.QueryParam("status"))

	items, total, err := h.svc.ListAppointments(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	appt, err := h.svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) CompleteAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	appt, err := h.svc.Complete(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, appt)
}
