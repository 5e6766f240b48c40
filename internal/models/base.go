package models

import (
	"time"

	"budgeteer/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Rows are never physically
// removed: deletion flips IsDeleted and readers filter on it.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
