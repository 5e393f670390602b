package validators

import (
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
)

// BookingWindowMonths is how far ahead an appointment may be booked.
const BookingWindowMonths = 2

var appointmentMessages = map[string]string{
	"name.min":         "Name must be at least 2 characters",
	"email.email":      "Invalid email address",
	"phone.min":        "Phone number must be at least 10 digits",
	"date.required":    "Please select a date",
	"date.parse":       "Please select a valid date",
	"date.window":      "Please choose a date between today and two months from now",
	"service.required": "Please select a service",
}

// AppointmentForm is the raw booking form as submitted.
type AppointmentForm struct {
	Name    string `form:"name" json:"name" validate:"min=2"`
	Email   string `form:"email" json:"email" validate:"email"`
	Phone   string `form:"phone" json:"phone" validate:"min=10"`
	Date    string `form:"date" json:"date" validate:"required"`
	Service string `form:"service" json:"service" validate:"required"`
}

// Validate checks the form against the booking rules as of now. On success the
// returned input carries the submitted values verbatim.
func (f AppointmentForm) Validate(now time.Time, loc *time.Location) (booking.AppointmentInput, error) {
	errs := FieldErrors{}
	errs.collect(validate.Struct(f), appointmentMessages)

	var date time.Time
	if !errs.Has("date") {
		d, err := timezone.ParseDate(f.Date, loc)
		switch {
		case err != nil:
			errs.add("date", appointmentMessages["date.parse"])
		case !InBookingWindow(d, now, loc):
			errs.add("date", appointmentMessages["date.window"])
		default:
			date = d
		}
	}

	if err := errs.orNil(); err != nil {
		return booking.AppointmentInput{}, err
	}

	return booking.AppointmentInput{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Date:    date,
		Service: f.Service,
	}, nil
}

// BookingWindow returns the first and last bookable days relative to now.
func BookingWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	first := timezone.StartOfDay(now, loc)
	return first, first.AddDate(0, BookingWindowMonths, 0)
}

// InBookingWindow compares at day granularity: any time today is accepted, as is
// the day exactly BookingWindowMonths ahead.
func InBookingWindow(d, now time.Time, loc *time.Location) bool {
	first, last := BookingWindow(now, loc)
	day := timezone.StartOfDay(d, loc)
	return !day.Before(first) && !day.After(last)
}
