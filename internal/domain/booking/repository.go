package booking

import "context"

// Record is one document as returned by the store.
type Record struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is the remote document database. Collections are flat and
// schema-less; ids are assigned by the store on Create.
type DocumentStore interface {
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)

	// List returns every document in the collection, in no particular order.
	List(ctx context.Context, collection string) ([]Record, error)

	// Delete removes a document by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection string, id string) error
}

// Pinger is implemented by stores that can report their own readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
