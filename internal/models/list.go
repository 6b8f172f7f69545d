package models

import (
	"time"

	"github.com/google/uuid"
)

// List is an ordered column within a board. Position is an integer sort key
// among siblings; new lists append at max+1.
type List struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`

	Cards []Card `gorm:"-" json:"cards,omitempty"`
}
