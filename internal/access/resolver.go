package access

import (
	"errors"

	"boardify-backend/internal/apperr"
	"boardify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Level is a user's relationship to a board. The owner is a distinct level
// rather than a sentinel membership row, so the (board, user) unique
// constraint never has to carry an implicit-owner edge case.
type Level int

const (
	None Level = iota
	Member
	Owner
)

func (l Level) String() string {
	switch l {
	case Owner:
		return "owner"
	case Member:
		return "member"
	default:
		return "none"
	}
}

// AtLeast reports whether l grants the operations min allows.
func (l Level) AtLeast(min Level) bool { return l >= min }

// Resolve loads the board and determines userID's access level to it.
// A missing board yields apperr.ErrNotFound; a board the user has no
// relationship to yields the board with level None, leaving the caller to
// decide between 403 and 404 semantics.
func Resolve(tx *gorm.DB, boardID, userID uuid.UUID) (*models.Board, Level, error) {
	var board models.Board
	if err := tx.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, None, apperr.New(apperr.ErrNotFound, "board not found")
		}
		return nil, None, err
	}

	if board.OwnerID == userID {
		return &board, Owner, nil
	}

	var count int64
	err := tx.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	if err != nil {
		return nil, None, err
	}
	if count > 0 {
		return &board, Member, nil
	}
	return &board, None, nil
}

// Require resolves and enforces a minimum level in one step. Insufficient
// access maps to apperr.ErrForbidden; this intentionally reveals board
// existence to non-members, matching the documented behavior.
func Require(tx *gorm.DB, boardID, userID uuid.UUID, min Level) (*models.Board, Level, error) {
	board, level, err := Resolve(tx, boardID, userID)
	if err != nil {
		return nil, None, err
	}
	if !level.AtLeast(min) {
		if min == Owner && level != None {
			return nil, level, apperr.New(apperr.ErrForbidden, "only the owner can do this")
		}
		return nil, level, apperr.New(apperr.ErrForbidden, "access denied")
	}
	return board, level, nil
}
