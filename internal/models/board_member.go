package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// BoardMember grants a non-owner user access to a board. One row per
// (board, user) pair.
type BoardMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_user" json:"board_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_user" json:"user_id"`
	Role     string    `gorm:"size:20;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
