package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationInfo       = "info"
	NotificationInvite     = "invite"
	NotificationAssignment = "assignment"
	NotificationDueDate    = "due_date"
)

// Notification is a user-targeted message, optionally referencing the board
// or card that triggered it.
type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	Message        string     `gorm:"not null" json:"message"`
	Type           string     `gorm:"size:50;default:'info'" json:"type"`
	RelatedBoardID *uuid.UUID `gorm:"type:uuid" json:"related_board_id"`
	RelatedCardID  *uuid.UUID `gorm:"type:uuid" json:"related_card_id"`
	IsRead         bool       `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time  `json:"created_at"`
}
