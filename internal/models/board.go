package models

import (
	"time"

	"github.com/google/uuid"
)

// Board is the top-level collaborative workspace. The owner is fixed at
// creation and is never materialized as a BoardMember row.
type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Lists []List `gorm:"-" json:"lists,omitempty"`
}
