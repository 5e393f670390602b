package handlers

import (
	"context"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

// BookingProvider is the data-access layer the handlers depend on.
type BookingProvider interface {
	Appointments() []booking.Appointment
	Services() []booking.Service

	ListAppointments(ctx context.Context) ([]booking.Appointment, error)
	ListServices(ctx context.Context) ([]booking.Service, error)

	BookAppointment(ctx context.Context, in booking.AppointmentInput) (booking.Appointment, error)
	AddService(ctx context.Context, in booking.ServiceInput) (booking.Service, error)
	RemoveService(ctx context.Context, id string) error
}
