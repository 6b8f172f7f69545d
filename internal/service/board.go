package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boardify-backend/internal/access"
	"boardify-backend/internal/activity"
	"boardify-backend/internal/apperr"
	"boardify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardService struct {
	db *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{db: db}
}

type CreateBoardInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateBoardInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type InviteMemberInput struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MemberEntry is one row of the members listing. The owner appears first with
// a synthesized entry since ownership is not a membership row.
type MemberEntry struct {
	ID       *uuid.UUID   `json:"id,omitempty"`
	UserID   uuid.UUID    `json:"user_id"`
	User     *models.User `json:"user"`
	Role     string       `json:"role"`
	JoinedAt time.Time    `json:"joined_at"`
}

// List returns every board the user owns or is a member of.
func (s *BoardService) List(ctx context.Context, userID uuid.UUID) ([]models.Board, error) {
	var boards []models.Board
	err := s.db.WithContext(ctx).
		Distinct("boards.*").
		Joins("LEFT JOIN board_members ON board_members.board_id = boards.id").
		Where("boards.owner_id = ? OR board_members.user_id = ?", userID, userID).
		Find(&boards).Error
	return boards, err
}

func (s *BoardService) Create(ctx context.Context, userID uuid.UUID, in CreateBoardInput) (*models.Board, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.New(apperr.ErrInvalid, "title is required")
	}

	board := models.Board{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		return activity.Record(tx, board.ID, userID, models.ActionCreated, models.EntityBoard, board.ID,
			fmt.Sprintf("created board '%s'", board.Title), nil)
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Get returns the board with its lists and cards, ordered by position.
func (s *BoardService) Get(ctx context.Context, userID, boardID uuid.UUID) (*models.Board, error) {
	db := s.db.WithContext(ctx)
	board, _, err := access.Require(db, boardID, userID, access.Member)
	if err != nil {
		return nil, err
	}

	var lists []models.List
	if err := db.Where("board_id = ?", boardID).Order("position ASC").Find(&lists).Error; err != nil {
		return nil, err
	}

	listIDs := make([]uuid.UUID, len(lists))
	for i, l := range lists {
		listIDs[i] = l.ID
	}
	var cards []models.Card
	if len(listIDs) > 0 {
		err := db.Where("list_id IN ?", listIDs).Order("position ASC").
			Preload("Assignments.User").
			Preload("Attachments").
			Preload("Checklist", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			Find(&cards).Error
		if err != nil {
			return nil, err
		}
	}

	byList := make(map[uuid.UUID][]models.Card, len(lists))
	for _, c := range cards {
		byList[c.ListID] = append(byList[c.ListID], c)
	}
	for i := range lists {
		lists[i].Cards = byList[lists[i].ID]
	}
	board.Lists = lists
	return board, nil
}

func (s *BoardService) Update(ctx context.Context, userID, boardID uuid.UUID, in UpdateBoardInput) (*models.Board, error) {
	var board *models.Board
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		board, _, err = access.Require(tx, boardID, userID, access.Member)
		if err != nil {
			return err
		}

		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return apperr.New(apperr.ErrInvalid, "title cannot be empty")
			}
			oldTitle := board.Title
			board.Title = *in.Title
			err := activity.Record(tx, boardID, userID, models.ActionUpdated, models.EntityBoard, boardID,
				fmt.Sprintf("renamed board from '%s' to '%s'", oldTitle, board.Title),
				map[string]string{"from": oldTitle, "to": board.Title})
			if err != nil {
				return err
			}
		}
		if in.Description != nil {
			board.Description = *in.Description
		}
		board.UpdatedAt = time.Now().UTC()
		return tx.Save(board).Error
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// Delete removes the board and everything under it: checklist items,
// attachments, assignments, cards, lists, memberships and activities, in
// dependency order within one transaction. Owner only.
func (s *BoardService) Delete(ctx context.Context, userID, boardID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, _, err := access.Require(tx, boardID, userID, access.Owner)
		if err != nil {
			return err
		}

		var listIDs []uuid.UUID
		if err := tx.Model(&models.List{}).Where("board_id = ?", boardID).Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		var cardIDs []uuid.UUID
		if len(listIDs) > 0 {
			if err := tx.Model(&models.Card{}).Where("list_id IN ?", listIDs).Pluck("id", &cardIDs).Error; err != nil {
				return err
			}
		}

		if len(cardIDs) > 0 {
			for _, child := range []any{&models.ChecklistItem{}, &models.Attachment{}, &models.CardAssignment{}} {
				if err := tx.Where("card_id IN ?", cardIDs).Delete(child).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", cardIDs).Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}
		if len(listIDs) > 0 {
			if err := tx.Where("id IN ?", listIDs).Delete(&models.List{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, "id = ?", boardID).Error
	})
}

// Members lists the board's owner followed by its membership rows.
func (s *BoardService) Members(ctx context.Context, userID, boardID uuid.UUID) ([]MemberEntry, error) {
	db := s.db.WithContext(ctx)
	board, _, err := access.Require(db, boardID, userID, access.Member)
	if err != nil {
		return nil, err
	}

	var owner models.User
	if err := db.First(&owner, "id = ?", board.OwnerID).Error; err != nil {
		return nil, err
	}
	entries := []MemberEntry{{
		UserID:   owner.ID,
		User:     &owner,
		Role:     "owner",
		JoinedAt: board.CreatedAt,
	}}

	var members []models.BoardMember
	if err := db.Where("board_id = ?", boardID).Preload("User").Find(&members).Error; err != nil {
		return nil, err
	}
	for i := range members {
		m := members[i]
		entries = append(entries, MemberEntry{
			ID:       &m.ID,
			UserID:   m.UserID,
			User:     m.User,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return entries, nil
}

// Invite adds a user to the board by username. Owner only. The invited user
// gets a notification.
func (s *BoardService) Invite(ctx context.Context, userID, boardID uuid.UUID, in InviteMemberInput) (*models.BoardMember, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, apperr.New(apperr.ErrInvalid, "username is required")
	}
	role := in.Role
	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleMember && role != models.RoleAdmin {
		return nil, apperr.Newf(apperr.ErrInvalid, "unknown role '%s'", role)
	}

	var member models.BoardMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board, _, err := access.Require(tx, boardID, userID, access.Owner)
		if err != nil {
			return err
		}

		var target models.User
		if err := tx.First(&target, "username = ?", in.Username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "user not found")
			}
			return err
		}
		if target.ID == board.OwnerID {
			return apperr.New(apperr.ErrInvalid, "user is the owner of this board")
		}

		var count int64
		if err := tx.Model(&models.BoardMember{}).
			Where("board_id = ? AND user_id = ?", boardID, target.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.New(apperr.ErrAlreadyExists, "user is already a member")
		}

		member = models.BoardMember{
			ID:      uuid.New(),
			BoardID: boardID,
			UserID:  target.ID,
			Role:    role,
			User:    &target,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		err = activity.Record(tx, boardID, userID, models.ActionAdded, models.EntityMember, target.ID,
			fmt.Sprintf("added %s to the board", target.Username), nil)
		if err != nil {
			return err
		}

		notification := models.Notification{
			ID:             uuid.New(),
			UserID:         target.ID,
			Title:          "Board invitation",
			Message:        fmt.Sprintf("You were added to board '%s'", board.Title),
			Type:           models.NotificationInvite,
			RelatedBoardID: &boardID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember deletes a membership row. Owner only.
func (s *BoardService) RemoveMember(ctx context.Context, userID, boardID, memberID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, _, err := access.Require(tx, boardID, userID, access.Owner)
		if err != nil {
			return err
		}

		var member models.BoardMember
		if err := tx.Preload("User").First(&member, "id = ?", memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "member not found")
			}
			return err
		}
		if member.BoardID != boardID {
			return apperr.New(apperr.ErrNotFound, "member not found")
		}

		if err := tx.Delete(&member).Error; err != nil {
			return err
		}
		username := ""
		if member.User != nil {
			username = member.User.Username
		}
		return activity.Record(tx, boardID, userID, models.ActionRemoved, models.EntityMember, member.UserID,
			fmt.Sprintf("removed %s from the board", username), nil)
	})
}

// Activities returns the board's recent activity, newest first, capped at 50.
func (s *BoardService) Activities(ctx context.Context, userID, boardID uuid.UUID) ([]models.Activity, error) {
	db := s.db.WithContext(ctx)
	if _, _, err := access.Require(db, boardID, userID, access.Member); err != nil {
		return nil, err
	}
	return activity.Feed(db, boardID)
}
