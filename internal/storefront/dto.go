package storefront

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/internal/pricing"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// BatchSummary is the public slice of the active batch.
type BatchSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

// Entry is one day/category cell as buyers see it.
type Entry struct {
	Day         int              `json:"day"`
	Category    enums.Category   `json:"category"`
	DisplayName string           `json:"display_name"`
	Description *string          `json:"description,omitempty"`
	IsAvailable bool             `json:"is_available"`
	Brackets    catalog.Brackets `json:"brackets"`
}

// CatalogView is the storefront catalog. Batch is nil and Entries empty when
// no batch is active.
type CatalogView struct {
	Batch   *BatchSummary `json:"batch"`
	Entries []Entry       `json:"entries"`
}

// QuoteRequest is the buyer's selection.
type QuoteRequest struct {
	Items []pricing.Item `json:"items" validate:"max=12,dive"`
}

// QuoteView is a priced selection against the active batch.
type QuoteView struct {
	BatchID *uuid.UUID `json:"batch_id,omitempty"`
	pricing.Quote
}

func newCatalogView(model *catalog.Model) CatalogView {
	view := CatalogView{Entries: []Entry{}}
	if batch := model.Batch(); batch != nil {
		view.Batch = &BatchSummary{ID: batch.ID, Name: batch.Name, Description: batch.Description}
	}
	for _, p := range model.Entries() {
		view.Entries = append(view.Entries, Entry{
			Day:         p.Day,
			Category:    p.Category,
			DisplayName: p.EffectiveName(),
			Description: p.Description,
			IsAvailable: p.Available(),
			Brackets:    p.Brackets,
		})
	}
	return view
}
