package audit

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	ActionAppointmentBooked = "appointment_booked"
	ActionServiceAdded      = "service_added"
	ActionServiceRemoved    = "service_removed"
)

type Event struct {
	Action     string
	Entity     string
	EntityID   string
	Metadata   any
	OccurredAt time.Time

	// span of the operation that raised the event, restored for the sinks
	spanContext trace.SpanContext
}

// Sink persists or forwards audit events.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Write(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}
