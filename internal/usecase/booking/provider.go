package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

const DefaultStoreTimeout = 10 * time.Second

// ======================================================
// DEPENDENCIES
// ======================================================

// Auditor receives an event after every successful mutation.
type Auditor interface {
	Dispatch(ctx context.Context, ev audit.Event)
}

type noopAuditor struct{}

func (noopAuditor) Dispatch(context.Context, audit.Event) {}

type Option func(*Provider)

// WithTimeout bounds every individual store call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.timeout = d }
}

func WithAuditor(a Auditor) Option {
	return func(p *Provider) {
		if a != nil {
			p.audit = a
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(p *Provider) {
		if log != nil {
			p.log = log
		}
	}
}

// ======================================================
// PROVIDER
// ======================================================

// cache holds one collection. issued counts refresh reads handed out;
// applied is the ticket of the read currently reflected in items.
type cache[T any] struct {
	items   []T
	issued  uint64
	applied uint64
}

// Provider owns the in-memory view of appointments and services and is the
// only writer to it. Mutations perform one store write followed by one full
// re-read of the affected collection.
type Provider struct {
	store   domain.DocumentStore
	timeout time.Duration
	audit   Auditor
	log     *slog.Logger
	tracer  trace.Tracer

	mu           sync.RWMutex
	appointments cache[domain.Appointment]
	services     cache[domain.Service]
}

func NewProvider(store domain.DocumentStore, opts ...Option) *Provider {
	p := &Provider{
		store:   store,
		timeout: DefaultStoreTimeout,
		audit:   noopAuditor{},
		log:     slog.Default(),
		tracer:  otel.Tracer("github.com/BruksfildServices01/appointment-booking/internal/usecase/booking"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(slog.String("component", "provider"))
	return p
}

// Load fetches both collections once. It does not retry.
func (p *Provider) Load(ctx context.Context) error {
	if _, err := p.ListAppointments(ctx); err != nil {
		return err
	}
	if _, err := p.ListServices(ctx); err != nil {
		return err
	}
	return nil
}

func (p *Provider) Appointments() []domain.Appointment {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.Appointment(nil), p.appointments.items...)
}

func (p *Provider) Services() []domain.Service {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.Service(nil), p.services.items...)
}

// ======================================================
// READS
// ======================================================

func (p *Provider) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	ctx, span := p.tracer.Start(ctx, "provider.ListAppointments")
	defer span.End()

	out, err := refresh(ctx, p, domain.CollectionAppointments, &p.appointments, domain.AppointmentFromRecord)
	return out, endSpan(span, err)
}

func (p *Provider) ListServices(ctx context.Context) ([]domain.Service, error) {
	ctx, span := p.tracer.Start(ctx, "provider.ListServices")
	defer span.End()

	out, err := refresh(ctx, p, domain.CollectionServices, &p.services, domain.ServiceFromRecord)
	return out, endSpan(span, err)
}

// refresh reads a whole collection and replaces the cache unless a read
// issued later has already been applied. Records that fail to decode are
// skipped.
func refresh[T any](
	ctx context.Context,
	p *Provider,
	collection string,
	c *cache[T],
	decode func(domain.Record) (T, error),
) ([]T, error) {

	p.mu.Lock()
	c.issued++
	ticket := c.issued
	p.mu.Unlock()

	callCtx, cancel := p.callContext(ctx)
	recs, err := p.store.List(callCtx, collection)
	cancel()
	if err != nil {
		p.log.Warn("list failed",
			slog.String("collection", collection),
			slog.String("kind", string(domain.KindOf(err))),
			slog.Any("err", err),
		)
		return nil, err
	}

	items := make([]T, 0, len(recs))
	for _, rec := range recs {
		item, err := decode(rec)
		if err != nil {
			p.log.Warn("skipping malformed record",
				slog.String("collection", collection),
				slog.String("id", rec.ID),
				slog.Any("err", err),
			)
			continue
		}
		items = append(items, item)
	}

	p.mu.Lock()
	if ticket > c.applied {
		c.items = items
		c.applied = ticket
	}
	p.mu.Unlock()

	return append([]T(nil), items...), nil
}

// ======================================================
// MUTATIONS
// ======================================================

// BookAppointment stores in as given; callers validate first. When the write
// succeeds but the refresh fails, the stored appointment is returned along
// with the refresh error.
func (p *Provider) BookAppointment(ctx context.Context, in domain.AppointmentInput) (domain.Appointment, error) {
	ctx, span := p.tracer.Start(ctx, "provider.BookAppointment",
		trace.WithAttributes(attribute.String("service.id", in.Service)),
	)
	defer span.End()

	id, err := p.create(ctx, domain.CollectionAppointments, in.Fields())
	if err != nil {
		return domain.Appointment{}, endSpan(span, err)
	}
	appt := in.WithID(id)
	span.SetAttributes(attribute.String("appointment.id", id))

	p.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionAppointmentBooked,
		Entity:   "appointment",
		EntityID: id,
		Metadata: map[string]any{
			"service": in.Service,
			"date":    in.Date.UTC().Format(time.RFC3339),
		},
	})

	if _, err := refresh(ctx, p, domain.CollectionAppointments, &p.appointments, domain.AppointmentFromRecord); err != nil {
		return appt, endSpan(span, err)
	}
	return appt, nil
}

// AddService follows the same contract as BookAppointment.
func (p *Provider) AddService(ctx context.Context, in domain.ServiceInput) (domain.Service, error) {
	ctx, span := p.tracer.Start(ctx, "provider.AddService")
	defer span.End()

	id, err := p.create(ctx, domain.CollectionServices, in.Fields())
	if err != nil {
		return domain.Service{}, endSpan(span, err)
	}
	svc := in.WithID(id)
	span.SetAttributes(attribute.String("service.id", id))

	p.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionServiceAdded,
		Entity:   "service",
		EntityID: id,
		Metadata: map[string]any{
			"name":     in.Name,
			"duration": in.Duration,
			"price":    in.Price,
		},
	})

	if _, err := refresh(ctx, p, domain.CollectionServices, &p.services, domain.ServiceFromRecord); err != nil {
		return svc, endSpan(span, err)
	}
	return svc, nil
}

// RemoveService deletes unconditionally. Removing an unknown id succeeds.
// Appointments that reference the id are left untouched.
func (p *Provider) RemoveService(ctx context.Context, id string) error {
	ctx, span := p.tracer.Start(ctx, "provider.RemoveService",
		trace.WithAttributes(attribute.String("service.id", id)),
	)
	defer span.End()

	callCtx, cancel := p.callContext(ctx)
	err := p.store.Delete(callCtx, domain.CollectionServices, id)
	cancel()
	if err != nil {
		p.log.Warn("delete failed",
			slog.String("collection", domain.CollectionServices),
			slog.String("id", id),
			slog.Any("err", err),
		)
		return endSpan(span, err)
	}

	p.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionServiceRemoved,
		Entity:   "service",
		EntityID: id,
	})

	_, err = refresh(ctx, p, domain.CollectionServices, &p.services, domain.ServiceFromRecord)
	return endSpan(span, err)
}

// ======================================================
// HELPERS
// ======================================================

func (p *Provider) create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	id, err := p.store.Create(callCtx, collection, fields)
	if err != nil {
		p.log.Warn("create failed",
			slog.String("collection", collection),
			slog.String("kind", string(domain.KindOf(err))),
			slog.Any("err", err),
		)
		return "", err
	}
	return id, nil
}

func (p *Provider) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
