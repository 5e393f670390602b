package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

// DocumentMemoryRepository is an in-process document store for local runs and
// tests. Documents are returned in insertion order.
type DocumentMemoryRepository struct {
	mu          sync.RWMutex
	collections map[string][]booking.Record
}

func NewDocumentMemoryRepository() *DocumentMemoryRepository {
	return &DocumentMemoryRepository{collections: map[string][]booking.Record{}}
}

func (r *DocumentMemoryRepository) Create(
	ctx context.Context,
	collection string,
	fields map[string]any,
) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", booking.NetworkError("create", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.collections[collection] = append(r.collections[collection], booking.Record{
		ID:     id.String(),
		Fields: copyFields(fields),
	})
	return id.String(), nil
}

func (r *DocumentMemoryRepository) List(
	ctx context.Context,
	collection string,
) ([]booking.Record, error) {

	if err := ctx.Err(); err != nil {
		return nil, booking.NetworkError("list", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := r.collections[collection]
	out := make([]booking.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, booking.Record{ID: d.ID, Fields: copyFields(d.Fields)})
	}
	return out, nil
}

func (r *DocumentMemoryRepository) Delete(
	ctx context.Context,
	collection string,
	id string,
) error {

	if err := ctx.Err(); err != nil {
		return booking.NetworkError("delete", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.collections[collection]
	for i, d := range docs {
		if d.ID == id {
			r.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *DocumentMemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
