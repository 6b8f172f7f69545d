package models

import (
	"time"

	"github.com/google/uuid"
)

// CardAssignment links a user to a card. A user may be assigned to a card at
// most once.
type CardAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CardID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_card_user" json:"card_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_card_user" json:"user_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
