package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// User is an organizer account allowed into the admin surface.
type User struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Email        string           `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	Role         enums.MemberRole `gorm:"column:role;not null;default:admin"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time       `gorm:"column:last_login_at"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
