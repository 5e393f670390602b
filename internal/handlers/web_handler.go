package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/dto"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
	"github.com/BruksfildServices01/appointment-booking/internal/validators"
)

const (
	TabAppointments = "appointments"
	TabServices     = "services"

	defaultServiceDuration = "30"
	defaultServicePrice    = "0"
)

// Notice is the single notification shown after a form submission.
type Notice struct {
	Kind    string
	Title   string
	Message string
}

var (
	noticeBooked = Notice{Kind: "success", Title: "Appointment Booked",
		Message: "Your appointment has been successfully booked."}
	noticeBookFailed = Notice{Kind: "error", Title: "Error",
		Message: "There was an error booking your appointment. Please try again."}
	noticeServiceAdded = Notice{Kind: "success", Title: "Service Added",
		Message: "The new service has been successfully added."}
	noticeAddFailed = Notice{Kind: "error", Title: "Error",
		Message: "There was an error adding the service. Please try again."}
	noticeServiceRemoved = Notice{Kind: "success", Title: "Service Removed",
		Message: "The service has been removed."}
	noticeRemoveFailed = Notice{Kind: "error", Title: "Error",
		Message: "There was an error removing the service. Please try again."}
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type WebHandler struct {
	provider BookingProvider
	guard    *SubmissionGuard
	loc      *time.Location
	log      *slog.Logger
	now      func() time.Time
}

func NewWebHandler(
	provider BookingProvider,
	guard *SubmissionGuard,
	loc *time.Location,
	log *slog.Logger,
) *WebHandler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &WebHandler{
		provider: provider,
		guard:    guard,
		loc:      loc,
		log:      log.With(slog.String("component", "web")),
		now:      time.Now,
	}
}

////////////////////////////////////////////////////////
// HOME
////////////////////////////////////////////////////////

func (h *WebHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "base", gin.H{
		"Page":  "home",
		"Title": "Home",
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *WebHandler) BookPage(c *gin.Context) {
	h.renderBook(c, http.StatusOK, validators.AppointmentForm{}, validators.FieldErrors{}, nil)
}

func (h *WebHandler) Book(c *gin.Context) {
	var form validators.AppointmentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBook(c, http.StatusBadRequest, form, validators.FieldErrors{}, &noticeBookFailed)
		return
	}

	in, err := form.Validate(h.now(), h.loc)
	if err != nil {
		h.renderBook(c, http.StatusBadRequest, form, fieldErrors(err), nil)
		return
	}

	_, err, shared := h.guard.Do("book", c.PostForm("token"), func() (any, error) {
		return h.provider.BookAppointment(sharedContext(c), in)
	})
	if err != nil {
		h.log.Error("book appointment failed",
			slog.String("kind", string(booking.KindOf(err))),
			slog.Any("err", err),
		)
		status, _ := httperr.Classify(err)
		h.renderBook(c, status, form, validators.FieldErrors{}, &noticeBookFailed)
		return
	}
	if shared {
		h.log.Info("duplicate booking submission collapsed")
	}

	h.renderBook(c, http.StatusOK, validators.AppointmentForm{}, validators.FieldErrors{}, &noticeBooked)
}

func (h *WebHandler) renderBook(
	c *gin.Context,
	status int,
	form validators.AppointmentForm,
	errs validators.FieldErrors,
	notice *Notice,
) {
	first, last := validators.BookingWindow(h.now(), h.loc)

	c.HTML(status, "base", gin.H{
		"Page":     "book",
		"Title":    "Book Appointment",
		"Form":     form,
		"Errors":   errs,
		"Services": h.provider.Services(),
		"Token":    h.guard.NewToken(),
		"MinDate":  first.Format(timezone.DateLayout),
		"MaxDate":  last.Format(timezone.DateLayout),
		"Notice":   notice,
	})
}

////////////////////////////////////////////////////////
// ADMIN
////////////////////////////////////////////////////////

func (h *WebHandler) Admin(c *gin.Context) {
	h.renderAdmin(c, http.StatusOK, adminTab(c.Query("tab")), defaultServiceForm(), validators.FieldErrors{}, nil)
}

func (h *WebHandler) AddService(c *gin.Context) {
	var form validators.ServiceForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAdmin(c, http.StatusBadRequest, TabServices, form, validators.FieldErrors{}, &noticeAddFailed)
		return
	}

	in, err := form.Validate()
	if err != nil {
		h.renderAdmin(c, http.StatusBadRequest, TabServices, form, fieldErrors(err), nil)
		return
	}

	_, err, _ = h.guard.Do("add_service", c.PostForm("token"), func() (any, error) {
		return h.provider.AddService(sharedContext(c), in)
	})
	if err != nil {
		h.log.Error("add service failed",
			slog.String("kind", string(booking.KindOf(err))),
			slog.Any("err", err),
		)
		status, _ := httperr.Classify(err)
		h.renderAdmin(c, status, TabServices, form, validators.FieldErrors{}, &noticeAddFailed)
		return
	}

	h.renderAdmin(c, http.StatusOK, TabServices, defaultServiceForm(), validators.FieldErrors{}, &noticeServiceAdded)
}

func (h *WebHandler) RemoveService(c *gin.Context) {
	id := c.Param("id")

	_, err, _ := h.guard.Do("remove_service", c.PostForm("token"), func() (any, error) {
		return nil, h.provider.RemoveService(sharedContext(c), id)
	})
	if err != nil {
		h.log.Error("remove service failed",
			slog.String("id", id),
			slog.String("kind", string(booking.KindOf(err))),
			slog.Any("err", err),
		)
		status, _ := httperr.Classify(err)
		h.renderAdmin(c, status, TabServices, defaultServiceForm(), validators.FieldErrors{}, &noticeRemoveFailed)
		return
	}

	h.renderAdmin(c, http.StatusOK, TabServices, defaultServiceForm(), validators.FieldErrors{}, &noticeServiceRemoved)
}

func (h *WebHandler) renderAdmin(
	c *gin.Context,
	status int,
	tab string,
	form validators.ServiceForm,
	errs validators.FieldErrors,
	notice *Notice,
) {
	services := h.provider.Services()

	c.HTML(status, "base", gin.H{
		"Page":         "admin",
		"Title":        "Admin",
		"Tab":          tab,
		"Appointments": dto.AppointmentRows(h.provider.Appointments(), services, h.loc),
		"Services":     dto.ServiceRows(services),
		"ServiceForm":  form,
		"Errors":       errs,
		"Token":        h.guard.NewToken(),
		"Notice":       notice,
	})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

// sharedContext detaches a collapsed submission from the first caller's
// cancellation; the provider's store timeout still bounds it.
func sharedContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func adminTab(tab string) string {
	if tab == TabServices {
		return TabServices
	}
	return TabAppointments
}

func defaultServiceForm() validators.ServiceForm {
	return validators.ServiceForm{
		Duration: defaultServiceDuration,
		Price:    defaultServicePrice,
	}
}

func fieldErrors(err error) validators.FieldErrors {
	var fe validators.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return validators.FieldErrors{"_": err.Error()}
}
