package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBatchNotFound is returned by stores when a batch id matches no row.
var ErrBatchNotFound = errors.New("batch not found")

// Store is the persistence contract for batches and products.
type Store interface {
	// ListBatches returns every batch, newest first.
	ListBatches(ctx context.Context) ([]Batch, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error)
	// ActiveBatches returns zero or more active batches, most recently
	// activated first.
	ActiveBatches(ctx context.Context) ([]Batch, error)
	CreateBatch(ctx context.Context, batch Batch) (*Batch, error)
	SetBatchActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (*Batch, error)
	// DeleteBatch removes the batch and its products.
	DeleteBatch(ctx context.Context, id uuid.UUID) error
	// ListProducts returns the stored rows of a batch, optionally filtered to
	// a single key.
	ListProducts(ctx context.Context, batchID uuid.UUID, key *Key) ([]Product, error)
	// UpsertProduct inserts or replaces the row keyed by (batch, day, category).
	UpsertProduct(ctx context.Context, product Product) (*Product, error)
}

// ProductLister is the read path needed to assemble a model.
type ProductLister interface {
	ListProducts(ctx context.Context, batchID uuid.UUID, key *Key) ([]Product, error)
}

// ActiveReader is the read path of the storefront.
type ActiveReader interface {
	ProductLister
	ActiveBatches(ctx context.Context) ([]Batch, error)
}

// Load reads a batch's products and assembles its twelve-entry model.
func Load(ctx context.Context, store ProductLister, batch Batch) (*Model, error) {
	rows, err := store.ListProducts(ctx, batch.ID, nil)
	if err != nil {
		return nil, err
	}
	return Assemble(batch, rows), nil
}

// LoadActive assembles the model of the most recently activated batch, or
// the empty model when no batch is active. The two reads are not isolated:
// a batch deactivated in between yields its rows or placeholders.
func LoadActive(ctx context.Context, store ActiveReader) (*Model, error) {
	batches, err := store.ActiveBatches(ctx)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return Empty(), nil
	}
	return Load(ctx, store, batches[0])
}
