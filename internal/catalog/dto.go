package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// CreateBatchInput carries the admin form for a new batch.
type CreateBatchInput struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// ProductInput is one row of the matrix submitted by the admin editor.
type ProductInput struct {
	Day         int               `json:"day" validate:"min=1,max=6"`
	Category    enums.Category    `json:"category" validate:"required"`
	DisplayName *string           `json:"display_name,omitempty" validate:"omitempty,max=120"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=2000"`
	Stock       int               `json:"stock" validate:"min=0"`
	Brackets    []decimal.Decimal `json:"brackets" validate:"len=6"`
}

// BracketWarning flags an entry whose prices rise with more days.
type BracketWarning struct {
	Day      int            `json:"day"`
	Category enums.Category `json:"category"`
	Message  string         `json:"message"`
}

// SaveResult reports the outcome of a full matrix save.
type SaveResult struct {
	BatchID  string           `json:"batch_id"`
	Saved    int              `json:"saved"`
	Products []Product        `json:"products"`
	Warnings []BracketWarning `json:"warnings"`
}

// MatrixView is the admin editor payload: batch plus twelve entries.
type MatrixView struct {
	Batch    Batch     `json:"batch"`
	Products []Product `json:"products"`
}
