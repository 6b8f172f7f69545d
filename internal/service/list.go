package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"boardify-backend/internal/access"
	"boardify-backend/internal/activity"
	"boardify-backend/internal/apperr"
	"boardify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListService struct {
	db *gorm.DB
}

func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db}
}

type CreateListInput struct {
	Title   string    `json:"title"`
	BoardID uuid.UUID `json:"board_id"`
}

type UpdateListInput struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

func (s *ListService) Create(ctx context.Context, userID uuid.UUID, in CreateListInput) (*models.List, error) {
	if strings.TrimSpace(in.Title) == "" || in.BoardID == uuid.Nil {
		return nil, apperr.New(apperr.ErrInvalid, "title and board_id are required")
	}

	var list models.List
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := access.Require(tx, in.BoardID, userID, access.Member); err != nil {
			return err
		}

		pos, err := nextPosition(tx, &models.List{}, "board_id", in.BoardID)
		if err != nil {
			return err
		}
		list = models.List{
			ID:       uuid.New(),
			Title:    in.Title,
			BoardID:  in.BoardID,
			Position: pos,
		}
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		return activity.Record(tx, in.BoardID, userID, models.ActionCreated, models.EntityList, list.ID,
			fmt.Sprintf("added list '%s'", list.Title), nil)
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ListService) Update(ctx context.Context, userID, listID uuid.UUID, in UpdateListInput) (*models.List, error) {
	var list models.List
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&list, "id = ?", listID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "list not found")
			}
			return err
		}
		if _, _, err := access.Require(tx, list.BoardID, userID, access.Member); err != nil {
			return err
		}

		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return apperr.New(apperr.ErrInvalid, "title cannot be empty")
			}
			oldTitle := list.Title
			list.Title = *in.Title
			err := activity.Record(tx, list.BoardID, userID, models.ActionUpdated, models.EntityList, listID,
				fmt.Sprintf("renamed list from '%s' to '%s'", oldTitle, list.Title),
				map[string]string{"from": oldTitle, "to": list.Title})
			if err != nil {
				return err
			}
		}
		if in.Position != nil {
			list.Position = *in.Position
		}
		return tx.Save(&list).Error
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes the list, its cards and their children in one transaction.
func (s *ListService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.List
		if err := tx.First(&list, "id = ?", listID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "list not found")
			}
			return err
		}
		if _, _, err := access.Require(tx, list.BoardID, userID, access.Member); err != nil {
			return err
		}

		err := activity.Record(tx, list.BoardID, userID, models.ActionDeleted, models.EntityList, listID,
			fmt.Sprintf("deleted list '%s'", list.Title), nil)
		if err != nil {
			return err
		}

		var cardIDs []uuid.UUID
		if err := tx.Model(&models.Card{}).Where("list_id = ?", listID).Pluck("id", &cardIDs).Error; err != nil {
			return err
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
		return tx.Delete(&list).Error
	})
}
