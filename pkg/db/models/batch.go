package models

import (
	"time"

	"github.com/google/uuid"
)

// Batch is a named sales period grouping one day/category price matrix.
type Batch struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description *string    `gorm:"column:description"`
	Active      bool       `gorm:"column:active;not null;default:false"`
	ActivatedAt *time.Time `gorm:"column:activated_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
