package models

import (
	"time"

	"github.com/google/uuid"
)

// ChecklistItem is a sub-task line on a card, ordered by position.
type ChecklistItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Completed bool      `gorm:"default:false" json:"completed"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
