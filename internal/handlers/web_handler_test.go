package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

func validBookingValues(serviceID string) url.Values {
	return url.Values{
		"name":    {"Jo"},
		"email":   {"jo@x.io"},
		"phone":   {"1234567890"},
		"date":    {"2026-10-19"},
		"service": {serviceID},
		"token":   {"tok-1"},
	}
}

func TestWeb_HomePage(t *testing.T) {
	r := newTestEngine(&fakeProvider{})

	w := do(r, http.MethodGet, "/", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Welcome to Appointment Booking", `href="/book"`, `href="/admin"`)
}

func TestWeb_BookPageListsServicesAndWindow(t *testing.T) {
	r := newTestEngine(&fakeProvider{
		services: []booking.Service{{ID: "s1", Name: "Haircut", Duration: 30, Price: 25}},
	})

	w := do(r, http.MethodGet, "/book", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(),
		`<option value="s1">Haircut</option>`,
		`min="2026-10-19"`,
		`max="2026-12-19"`,
		`name="token"`,
	)
}

func TestWeb_BookSuccessResetsForm(t *testing.T) {
	p := newMemoryProvider()
	svc, err := p.AddService(context.Background(), booking.ServiceInput{Name: "Haircut", Duration: 30, Price: 25})
	if err != nil {
		t.Fatalf("AddService error: %v", err)
	}
	r := newTestEngine(p)

	w := postForm(r, "/book", validBookingValues(svc.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	assertContains(t, body, "Appointment Booked", "Your appointment has been successfully booked.")
	if strings.Contains(body, `value="jo@x.io"`) {
		t.Fatal("form should be reset after a successful booking")
	}

	appts := p.Appointments()
	if len(appts) != 1 || appts[0].Name != "Jo" || appts[0].Service != svc.ID {
		t.Fatalf("appointments = %+v", appts)
	}
}

func TestWeb_BookValidationFailureMakesNoStoreCall(t *testing.T) {
	fp := &fakeProvider{}
	r := newTestEngine(fp)

	values := validBookingValues("s1")
	values.Set("name", "J")

	w := postForm(r, "/book", values)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Name must be at least 2 characters", `value="jo@x.io"`)
	if fp.mutations.Load() != 0 {
		t.Fatalf("store was called %d times", fp.mutations.Load())
	}
}

func TestWeb_BookRejectsDateOutsideWindow(t *testing.T) {
	fp := &fakeProvider{}
	r := newTestEngine(fp)

	values := validBookingValues("s1")
	values.Set("date", "2026-12-20")

	w := postForm(r, "/book", values)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Please choose a date between today and two months from now")
	if fp.mutations.Load() != 0 {
		t.Fatal("store should not be called")
	}
}

func TestWeb_BookStoreFailureKeepsValues(t *testing.T) {
	fp := &fakeProvider{
		bookFn: func(ctx context.Context, in booking.AppointmentInput) (booking.Appointment, error) {
			return booking.Appointment{}, errStoreDown
		},
	}
	r := newTestEngine(fp)

	w := postForm(r, "/book", validBookingValues("s1"))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(),
		"There was an error booking your appointment. Please try again.",
		`value="jo@x.io"`,
		`value="1234567890"`,
	)
}

func TestWeb_AdminTabs(t *testing.T) {
	fp := &fakeProvider{
		services: []booking.Service{{ID: "s1", Name: "Haircut", Duration: 30, Price: 25}},
		appointments: []booking.Appointment{
			{ID: "a1", Name: "Jo", Email: "jo@x.io", Phone: "1234567890", Service: "s1", Date: testNow},
			{ID: "a2", Name: "Al", Email: "al@x.io", Phone: "0987654321", Service: "removed-id", Date: testNow},
		},
	}
	r := newTestEngine(fp)

	w := do(r, http.MethodGet, "/admin", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(), "<td>Haircut</td>", "<td>removed-id</td>", "Oct 19, 2026 2:30 PM")

	w = do(r, http.MethodGet, "/admin?tab=services", nil, "")
	assertContains(t, w.Body.String(),
		"<td>$25.00</td>",
		`action="/admin/services/s1/delete"`,
		`name="duration" type="number" value="30"`,
		`name="price" type="number" step="0.01" value="0"`,
	)
}

func TestWeb_AddAndRemoveService(t *testing.T) {
	p := newMemoryProvider()
	r := newTestEngine(p)

	w := postForm(r, "/admin/services", url.Values{
		"name": {"Haircut"}, "duration": {"45"}, "price": {"19.5"}, "token": {"t1"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	assertContains(t, w.Body.String(), "Service Added", "<td>Haircut</td>", "<td>$19.50</td>")

	services := p.Services()
	if len(services) != 1 {
		t.Fatalf("services = %+v", services)
	}

	w = postForm(r, "/admin/services/"+services[0].ID+"/delete", url.Values{"token": {"t2"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Service Removed")
	if len(p.Services()) != 0 {
		t.Fatalf("services = %+v", p.Services())
	}
}

func TestWeb_AddServiceValidationFailure(t *testing.T) {
	fp := &fakeProvider{}
	r := newTestEngine(fp)

	w := postForm(r, "/admin/services", url.Values{"name": {"H"}, "duration": {"abc"}, "price": {"-1"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(),
		"Service name must be at least 2 characters",
		"Duration must be a whole number of minutes",
		"Price must be a positive number",
		`value="abc"`,
	)
	if fp.mutations.Load() != 0 {
		t.Fatal("store should not be called")
	}
}

func TestWeb_RemoveServiceFailure(t *testing.T) {
	fp := &fakeProvider{
		removeFn: func(ctx context.Context, id string) error {
			return booking.RejectedError("delete", context.Canceled)
		},
	}
	r := newTestEngine(fp)

	w := postForm(r, "/admin/services/s1/delete", url.Values{})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(), "There was an error removing the service. Please try again.")
}

func TestWeb_BookSurvivesCancelledRequestContext(t *testing.T) {
	fp := &fakeProvider{
		bookFn: func(ctx context.Context, in booking.AppointmentInput) (booking.Appointment, error) {
			if err := ctx.Err(); err != nil {
				return booking.Appointment{}, booking.NetworkError("create", err)
			}
			return in.WithID("a1"), nil
		},
	}
	r := newTestEngine(fp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(validBookingValues("s1").Encode())).WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Appointment Booked")
}
