package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const queueSize = 100

// Dispatcher delivers events to its sinks from a single background worker.
// Dispatch never blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	sinks []Sink
	log   *slog.Logger
	queue chan Event
	done  chan struct{}

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		sinks: sinks,
		log:   log.With(slog.String("component", "audit")),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		base := trace.ContextWithSpanContext(context.Background(), ev.spanContext)
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(base, 5*time.Second)
			if err := sink.Write(ctx, ev); err != nil {
				d.log.Warn("audit sink failed", slog.String("action", ev.Action), slog.Any("err", err))
			}
			cancel()
		}
	}
}

// Dispatch queues ev. The span active in ctx travels with the event so sinks
// can propagate it.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	ev.spanContext = trace.SpanContextFromContext(ctx)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
