package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity action verbs.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionMoved      = "moved"
	ActionCompleted  = "completed"
	ActionReopened   = "reopened"
	ActionAdded      = "added"
	ActionRemoved    = "removed"
	ActionAssigned   = "assigned"
	ActionUnassigned = "unassigned"
	ActionAttached   = "attached"
)

// Activity entity types.
const (
	EntityBoard  = "board"
	EntityList   = "list"
	EntityCard   = "card"
	EntityMember = "member"
)

// Activity is an immutable audit row describing one state change on a board.
// Rows are only ever appended; the board delete cascade is the single
// exception.
type Activity struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"board_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	Action      string         `gorm:"size:50;not null" json:"action"`
	EntityType  string         `gorm:"size:50;not null" json:"entity_type"`
	EntityID    uuid.UUID      `gorm:"type:uuid" json:"entity_id"`
	Description string         `gorm:"not null" json:"description"`
	Meta        datatypes.JSON `json:"meta,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
