package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/httpresp"
	"github.com/BruksfildServices01/appointment-booking/internal/validators"
)

type BookingAPIHandler struct {
	provider BookingProvider
	loc      *time.Location
	log      *slog.Logger
	now      func() time.Time
}

func NewBookingAPIHandler(provider BookingProvider, loc *time.Location, log *slog.Logger) *BookingAPIHandler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &BookingAPIHandler{
		provider: provider,
		loc:      loc,
		log:      log.With(slog.String("component", "api")),
		now:      time.Now,
	}
}

// --------- Requests ---------

// CreateServiceRequest accepts duration and price as JSON numbers or numeric
// strings; both are validated from their text.
type CreateServiceRequest struct {
	Name     string      `json:"name"`
	Duration json.Number `json:"duration"`
	Price    json.Number `json:"price"`
}

// --------- Appointments ---------

func (h *BookingAPIHandler) ListAppointments(c *gin.Context) {
	appts, err := h.provider.ListAppointments(c.Request.Context())
	if err != nil {
		h.fail(c, "list appointments", err)
		return
	}
	httpresp.List(c, appts)
}

func (h *BookingAPIHandler) CreateAppointment(c *gin.Context) {
	var form validators.AppointmentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Request body must be a JSON object.")
		return
	}

	in, err := form.Validate(h.now(), h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	appt, err := h.provider.BookAppointment(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "book appointment", err)
		return
	}
	httpresp.Created(c, appt)
}

// --------- Services ---------

func (h *BookingAPIHandler) ListServices(c *gin.Context) {
	services, err := h.provider.ListServices(c.Request.Context())
	if err != nil {
		h.fail(c, "list services", err)
		return
	}
	httpresp.List(c, services)
}

func (h *BookingAPIHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Request body must be a JSON object.")
		return
	}

	form := validators.ServiceForm{
		Name:     req.Name,
		Duration: req.Duration.String(),
		Price:    req.Price.String(),
	}
	in, err := form.Validate()
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	svc, err := h.provider.AddService(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "add service", err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *BookingAPIHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")

	if err := h.provider.RemoveService(c.Request.Context(), id); err != nil {
		h.fail(c, "remove service", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingAPIHandler) fail(c *gin.Context, op string, err error) {
	h.log.Error(op+" failed",
		slog.String("kind", string(booking.KindOf(err))),
		slog.Any("err", err),
	)
	httperr.FromError(c, err)
}
