package catalog

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// Model is the in-memory view of one batch: the batch itself plus all
// twelve day/category entries, placeholders included.
type Model struct {
	batch   *Batch
	entries []Product
}

// Assemble builds the twelve-entry matrix for batch from the stored rows.
// Missing cells become placeholders; rows for other batches or invalid keys
// are ignored. When two rows share a key the later one wins.
func Assemble(batch Batch, rows []Product) *Model {
	entries := make([]Product, MatrixSize)
	for i, key := range Keys() {
		entries[i] = Placeholder(batch.ID, key)
	}
	for _, row := range rows {
		if row.BatchID != batch.ID {
			continue
		}
		idx := row.Key.Index()
		if idx < 0 {
			continue
		}
		row.Persisted = true
		entries[idx] = row
	}
	b := batch
	return &Model{batch: &b, entries: entries}
}

// Empty returns the model shown when no batch is active.
func Empty() *Model {
	return &Model{}
}

// Batch returns the batch backing the model, or nil for the empty model.
func (m *Model) Batch() *Batch {
	if m == nil || m.batch == nil {
		return nil
	}
	b := *m.batch
	return &b
}

// BatchID returns the batch id, or uuid.Nil for the empty model.
func (m *Model) BatchID() uuid.UUID {
	if m == nil || m.batch == nil {
		return uuid.Nil
	}
	return m.batch.ID
}

// IsEmpty reports whether the model has no backing batch.
func (m *Model) IsEmpty() bool {
	return m == nil || m.batch == nil
}

// Entries returns a copy of the entries in matrix order.
func (m *Model) Entries() []Product {
	if m == nil {
		return nil
	}
	out := make([]Product, len(m.entries))
	copy(out, m.entries)
	return out
}

// Lookup returns the product at (day, category). It is absent only for an
// out-of-range key or when the model is empty.
func (m *Model) Lookup(day int, category enums.Category) (Product, bool) {
	if m == nil || len(m.entries) == 0 {
		return Product{}, false
	}
	idx := Key{Day: day, Category: category}.Index()
	if idx < 0 {
		return Product{}, false
	}
	return m.entries[idx], true
}

// IsAvailable reports whether (day, category) exists and has stock.
func (m *Model) IsAvailable(day int, category enums.Category) bool {
	product, ok := m.Lookup(day, category)
	return ok && product.Available()
}
