package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// Product is one (batch, day, category) cell of the catalog matrix.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	BatchID       uuid.UUID       `gorm:"column:batch_id;type:uuid;not null;uniqueIndex:idx_products_batch_day_category,priority:1"`
	Day           int             `gorm:"column:day;not null;uniqueIndex:idx_products_batch_day_category,priority:2"`
	Category      enums.Category  `gorm:"column:category;not null;uniqueIndex:idx_products_batch_day_category,priority:3"`
	DisplayName   *string         `gorm:"column:display_name"`
	Description   *string         `gorm:"column:description"`
	Stock         int             `gorm:"column:stock;not null;default:0"`
	PriceBracket1 decimal.Decimal `gorm:"column:price_bracket_1;type:numeric(10,2);not null"`
	PriceBracket2 decimal.Decimal `gorm:"column:price_bracket_2;type:numeric(10,2);not null"`
	PriceBracket3 decimal.Decimal `gorm:"column:price_bracket_3;type:numeric(10,2);not null"`
	PriceBracket4 decimal.Decimal `gorm:"column:price_bracket_4;type:numeric(10,2);not null"`
	PriceBracket5 decimal.Decimal `gorm:"column:price_bracket_5;type:numeric(10,2);not null"`
	PriceBracket6 decimal.Decimal `gorm:"column:price_bracket_6;type:numeric(10,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
