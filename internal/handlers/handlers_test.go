package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/infra/repository"
	ucBooking "github.com/BruksfildServices01/appointment-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/web"
)

var testNow = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider serves a fixed cache and counts mutations.
type fakeProvider struct {
	appointments []booking.Appointment
	services     []booking.Service

	bookFn   func(ctx context.Context, in booking.AppointmentInput) (booking.Appointment, error)
	addFn    func(ctx context.Context, in booking.ServiceInput) (booking.Service, error)
	removeFn func(ctx context.Context, id string) error
	listErr  error

	mutations atomic.Int32
}

func (f *fakeProvider) Appointments() []booking.Appointment { return f.appointments }
func (f *fakeProvider) Services() []booking.Service         { return f.services }

func (f *fakeProvider) ListAppointments(ctx context.Context) ([]booking.Appointment, error) {
	return f.appointments, f.listErr
}

func (f *fakeProvider) ListServices(ctx context.Context) ([]booking.Service, error) {
	return f.services, f.listErr
}

func (f *fakeProvider) BookAppointment(ctx context.Context, in booking.AppointmentInput) (booking.Appointment, error) {
	f.mutations.Add(1)
	if f.bookFn == nil {
		return in.WithID("a1"), nil
	}
	return f.bookFn(ctx, in)
}

func (f *fakeProvider) AddService(ctx context.Context, in booking.ServiceInput) (booking.Service, error) {
	f.mutations.Add(1)
	if f.addFn == nil {
		return in.WithID("s1"), nil
	}
	return f.addFn(ctx, in)
}

func (f *fakeProvider) RemoveService(ctx context.Context, id string) error {
	f.mutations.Add(1)
	if f.removeFn == nil {
		return nil
	}
	return f.removeFn(ctx, id)
}

func newMemoryProvider() *ucBooking.Provider {
	return ucBooking.NewProvider(
		repository.NewDocumentMemoryRepository(),
		ucBooking.WithLogger(quietLogger()),
	)
}

func newTestEngine(provider BookingProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	webHandler := NewWebHandler(provider, NewSubmissionGuard(), time.UTC, quietLogger())
	webHandler.now = func() time.Time { return testNow }

	apiHandler := NewBookingAPIHandler(provider, time.UTC, quietLogger())
	apiHandler.now = func() time.Time { return testNow }

	r.GET("/", webHandler.Home)
	r.GET("/book", webHandler.BookPage)
	r.POST("/book", webHandler.Book)
	r.GET("/admin", webHandler.Admin)
	r.POST("/admin/services", webHandler.AddService)
	r.POST("/admin/services/:id/delete", webHandler.RemoveService)

	r.GET("/api/appointments", apiHandler.ListAppointments)
	r.POST("/api/appointments", apiHandler.CreateAppointment)
	r.GET("/api/services", apiHandler.ListServices)
	r.POST("/api/services", apiHandler.CreateService)
	r.DELETE("/api/services/:id", apiHandler.DeleteService)

	return r
}

func do(r http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, target, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func postJSON(r http.Handler, target, body string) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, target, strings.NewReader(body), "application/json")
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Fatalf("body does not contain %q:\n%s", want, body)
		}
	}
}

var errStoreDown = booking.NetworkError("create", errors.New("connection refused"))
