package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Batch is a named sales period. At most one batch is meant to be active.
type Batch struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Active      bool       `json:"active"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Product is one day/category cell of a batch's price matrix.
type Product struct {
	ID      uuid.UUID `json:"id"`
	BatchID uuid.UUID `json:"batch_id"`
	Key
	DisplayName *string  `json:"display_name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Stock       int      `json:"stock"`
	Brackets    Brackets `json:"brackets"`

	// Persisted is false for placeholders synthesized at read time.
	Persisted bool `json:"persisted"`
}

// EffectiveName returns the display name, falling back to "Day N".
func (p Product) EffectiveName() string {
	if p.DisplayName != nil {
		if name := strings.TrimSpace(*p.DisplayName); name != "" {
			return name
		}
	}
	return DefaultName(p.Day)
}

// Available reports whether the product can be selected by buyers.
func (p Product) Available() bool {
	return p.Stock > 0
}

// Placeholder returns the zero-priced, zero-stock stand-in for key.
func Placeholder(batchID uuid.UUID, key Key) Product {
	return Product{
		BatchID:  batchID,
		Key:      key,
		Stock:    0,
		Brackets: ZeroBrackets(),
	}
}
