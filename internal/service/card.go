package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"boardify-backend/internal/access"
	"boardify-backend/internal/activity"
	"boardify-backend/internal/apperr"
	"boardify-backend/internal/config"
	"boardify-backend/internal/models"
	"boardify-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardService struct {
	db    *gorm.DB
	blobs storage.Store
}

func NewCardService(db *gorm.DB, blobs storage.Store) *CardService {
	return &CardService{db: db, blobs: blobs}
}

type CreateCardInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ListID      uuid.UUID `json:"list_id"`
	DueDate     *string   `json:"due_date"`
}

// UpdateCardInput distinguishes "absent" (nil) from "set". An empty due_date
// string clears the date.
type UpdateCardInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Position    *int       `json:"position"`
	Completed   *bool      `json:"completed"`
	DueDate     *string    `json:"due_date"`
	ListID      *uuid.UUID `json:"list_id"`
}

type AssignInput struct {
	UserID uuid.UUID `json:"user_id"`
}

type ChecklistItemInput struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperr.Newf(apperr.ErrInvalid, "invalid due_date '%s'", raw)
	}
	return &t, nil
}

// loadCard fetches the card and its list, then enforces board access.
func (s *CardService) loadCard(tx *gorm.DB, cardID, userID uuid.UUID) (*models.Card, *models.List, error) {
	var card models.Card
	if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.ErrNotFound, "card not found")
		}
		return nil, nil, err
	}
	var list models.List
	if err := tx.First(&list, "id = ?", card.ListID).Error; err != nil {
		return nil, nil, err
	}
	if _, _, err := access.Require(tx, list.BoardID, userID, access.Member); err != nil {
		return nil, nil, err
	}
	return &card, &list, nil
}

func (s *CardService) Create(ctx context.Context, userID uuid.UUID, in CreateCardInput) (*models.Card, error) {
	if strings.TrimSpace(in.Title) == "" || in.ListID == uuid.Nil {
		return nil, apperr.New(apperr.ErrInvalid, "title and list_id are required")
	}

	var card models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.List
		if err := tx.First(&list, "id = ?", in.ListID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "list not found")
			}
			return err
		}
		if _, _, err := access.Require(tx, list.BoardID, userID, access.Member); err != nil {
			return err
		}

		var due *time.Time
		if in.DueDate != nil {
			var err error
			if due, err = parseDueDate(*in.DueDate); err != nil {
				return err
			}
		}

		pos, err := nextPosition(tx, &models.Card{}, "list_id", in.ListID)
		if err != nil {
			return err
		}
		card = models.Card{
			ID:          uuid.New(),
			Title:       in.Title,
			Description: in.Description,
			ListID:      in.ListID,
			Position:    pos,
			DueDate:     due,
		}
		if err := tx.Create(&card).Error; err != nil {
			return err
		}
		return activity.Record(tx, list.BoardID, userID, models.ActionCreated, models.EntityCard, card.ID,
			fmt.Sprintf("added card '%s' to list '%s'", card.Title, list.Title), nil)
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CardService) Get(ctx context.Context, userID, cardID uuid.UUID) (*models.Card, error) {
	db := s.db.WithContext(ctx)
	card, _, err := s.loadCard(db, cardID, userID)
	if err != nil {
		return nil, err
	}
	err = db.Preload("Assignments.User").
		Preload("Attachments").
		Preload("Checklist", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(card, "id = ?", cardID).Error
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Update applies field changes. A list_id change moves the card, which is
// only allowed within the same board; the card re-appends at the tail of the
// destination list.
func (s *CardService) Update(ctx context.Context, userID, cardID uuid.UUID, in UpdateCardInput) (*models.Card, error) {
	var card *models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list *models.List
		var err error
		card, list, err = s.loadCard(tx, cardID, userID)
		if err != nil {
			return err
		}

		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return apperr.New(apperr.ErrInvalid, "title cannot be empty")
			}
			card.Title = *in.Title
		}
		if in.Description != nil {
			card.Description = *in.Description
		}
		if in.Position != nil {
			card.Position = *in.Position
		}
		if in.Completed != nil && *in.Completed != card.Completed {
			card.Completed = *in.Completed
			action := models.ActionReopened
			if card.Completed {
				action = models.ActionCompleted
			}
			err := activity.Record(tx, list.BoardID, userID, action, models.EntityCard, cardID,
				fmt.Sprintf("%s card '%s'", action, card.Title), nil)
			if err != nil {
				return err
			}
		}
		if in.DueDate != nil {
			due, err := parseDueDate(*in.DueDate)
			if err != nil {
				return err
			}
			card.DueDate = due
		}

		if in.ListID != nil && *in.ListID != card.ListID {
			var dest models.List
			if err := tx.First(&dest, "id = ?", *in.ListID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.ErrNotFound, "destination list not found")
				}
				return err
			}
			if dest.BoardID != list.BoardID {
				return apperr.New(apperr.ErrInvalid, "cannot move card to a list on another board")
			}

			card.ListID = dest.ID
			pos, err := nextPosition(tx, &models.Card{}, "list_id", dest.ID)
			if err != nil {
				return err
			}
			card.Position = pos
			err = activity.Record(tx, list.BoardID, userID, models.ActionMoved, models.EntityCard, cardID,
				fmt.Sprintf("moved card '%s' from '%s' to '%s'", card.Title, list.Title, dest.Title),
				map[string]string{"from": list.Title, "to": dest.Title})
			if err != nil {
				return err
			}
		}

		card.UpdatedAt = time.Now().UTC()
		return tx.Save(card).Error
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, list, err := s.loadCard(tx, cardID, userID)
		if err != nil {
			return err
		}

		err = activity.Record(tx, list.BoardID, userID, models.ActionDeleted, models.EntityCard, cardID,
			fmt.Sprintf("deleted card '%s' from list '%s'", card.Title, list.Title), nil)
		if err != nil {
			return err
		}

		for _, child := range []any{&models.ChecklistItem{}, &models.Attachment{}, &models.CardAssignment{}} {
			if err := tx.Where("card_id = ?", cardID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(card).Error
	})
}

// Assign adds a user to the card, at most once per (card, user) pair, and
// notifies the assignee.
func (s *CardService) Assign(ctx context.Context, userID, cardID uuid.UUID, in AssignInput) (*models.CardAssignment, error) {
	if in.UserID == uuid.Nil {
		return nil, apperr.New(apperr.ErrInvalid, "user_id is required")
	}

	var assignment models.CardAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, list, err := s.loadCard(tx, cardID, userID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.CardAssignment{}).
			Where("card_id = ? AND user_id = ?", cardID, in.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.New(apperr.ErrAlreadyExists, "user already assigned")
		}

		var assignee models.User
		if err := tx.First(&assignee, "id = ?", in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "user not found")
			}
			return err
		}

		assignment = models.CardAssignment{
			ID:     uuid.New(),
			CardID: cardID,
			UserID: assignee.ID,
			User:   &assignee,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		err = activity.Record(tx, list.BoardID, userID, models.ActionAssigned, models.EntityCard, cardID,
			fmt.Sprintf("assigned %s to card '%s'", assignee.Username, card.Title), nil)
		if err != nil {
			return err
		}

		notification := models.Notification{
			ID:             uuid.New(),
			UserID:         assignee.ID,
			Title:          "Card assignment",
			Message:        fmt.Sprintf("You were assigned to card '%s'", card.Title),
			Type:           models.NotificationAssignment,
			RelatedBoardID: &list.BoardID,
			RelatedCardID:  &cardID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *CardService) Unassign(ctx context.Context, userID, cardID, assignmentID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, list, err := s.loadCard(tx, cardID, userID)
		if err != nil {
			return err
		}

		var assignment models.CardAssignment
		if err := tx.Preload("User").First(&assignment, "id = ?", assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "assignment not found")
			}
			return err
		}
		if assignment.CardID != cardID {
			return apperr.New(apperr.ErrNotFound, "assignment not found")
		}

		if err := tx.Delete(&assignment).Error; err != nil {
			return err
		}
		username := ""
		if assignment.User != nil {
			username = assignment.User.Username
		}
		return activity.Record(tx, list.BoardID, userID, models.ActionUnassigned, models.EntityCard, cardID,
			fmt.Sprintf("unassigned %s from card '%s'", username, card.Title), nil)
	})
}

// AddAttachment stores the blob and records the attachment row. The stored
// name is prefixed with an upload timestamp so uploads of the same filename
// never collide.
func (s *CardService) AddAttachment(ctx context.Context, userID, cardID uuid.UUID, filename string, r io.Reader) (*models.Attachment, error) {
	if filename == "" {
		return nil, apperr.New(apperr.ErrInvalid, "no file selected")
	}
	if !config.AllowedFile(filename) {
		return nil, apperr.New(apperr.ErrInvalid, "file type not allowed")
	}

	storedName := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102_150405"), filename)
	size, err := s.blobs.Save(ctx, storedName, r)
	if err != nil {
		return nil, err
	}

	var attachment models.Attachment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, list, err := s.loadCard(tx, cardID, userID)
		if err != nil {
			return err
		}

		attachment = models.Attachment{
			ID:         uuid.New(),
			CardID:     cardID,
			Filename:   filename,
			StoredName: storedName,
			FileSize:   size,
		}
		if err := tx.Create(&attachment).Error; err != nil {
			return err
		}
		return activity.Record(tx, list.BoardID, userID, models.ActionAttached, models.EntityCard, cardID,
			fmt.Sprintf("attached file '%s' to card '%s'", filename, card.Title), nil)
	})
	if err != nil {
		// The row never landed; drop the orphan blob.
		_ = s.blobs.Delete(ctx, storedName)
		return nil, err
	}
	return &attachment, nil
}

// OpenAttachment returns the blob content for download.
func (s *CardService) OpenAttachment(ctx context.Context, userID, cardID, attachmentID uuid.UUID) (*models.Attachment, io.ReadCloser, error) {
	db := s.db.WithContext(ctx)
	if _, _, err := s.loadCard(db, cardID, userID); err != nil {
		return nil, nil, err
	}
	var attachment models.Attachment
	if err := db.First(&attachment, "id = ?", attachmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.ErrNotFound, "attachment not found")
		}
		return nil, nil, err
	}
	if attachment.CardID != cardID {
		return nil, nil, apperr.New(apperr.ErrNotFound, "attachment not found")
	}
	rc, err := s.blobs.Open(ctx, attachment.StoredName)
	if err != nil {
		return nil, nil, apperr.New(apperr.ErrNotFound, "attachment content missing")
	}
	return &attachment, rc, nil
}

// DeleteAttachment removes the row and, best effort, the blob. A missing
// blob does not block the row deletion. No activity row is written.
func (s *CardService) DeleteAttachment(ctx context.Context, userID, cardID, attachmentID uuid.UUID) error {
	var storedName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := s.loadCard(tx, cardID, userID); err != nil {
			return err
		}

		var attachment models.Attachment
		if err := tx.First(&attachment, "id = ?", attachmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "attachment not found")
			}
			return err
		}
		if attachment.CardID != cardID {
			return apperr.New(apperr.ErrNotFound, "attachment not found")
		}
		storedName = attachment.StoredName
		return tx.Delete(&attachment).Error
	})
	if err != nil {
		return err
	}
	return s.blobs.Delete(ctx, storedName)
}

// AddChecklistItem appends an item. Checklist mutations are intentionally
// not narrated in the activity feed.
func (s *CardService) AddChecklistItem(ctx context.Context, userID, cardID uuid.UUID, in ChecklistItemInput) (*models.ChecklistItem, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.New(apperr.ErrInvalid, "title is required")
	}

	var item models.ChecklistItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := s.loadCard(tx, cardID, userID); err != nil {
			return err
		}

		pos, err := nextPosition(tx, &models.ChecklistItem{}, "card_id", cardID)
		if err != nil {
			return err
		}
		item = models.ChecklistItem{
			ID:       uuid.New(),
			CardID:   cardID,
			Title:    *in.Title,
			Position: pos,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CardService) UpdateChecklistItem(ctx context.Context, userID, cardID, itemID uuid.UUID, in ChecklistItemInput) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := s.loadCard(tx, cardID, userID); err != nil {
			return err
		}

		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "checklist item not found")
			}
			return err
		}
		if item.CardID != cardID {
			return apperr.New(apperr.ErrNotFound, "checklist item not found")
		}

		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return apperr.New(apperr.ErrInvalid, "title cannot be empty")
			}
			item.Title = *in.Title
		}
		if in.Completed != nil {
			item.Completed = *in.Completed
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CardService) DeleteChecklistItem(ctx context.Context, userID, cardID, itemID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := s.loadCard(tx, cardID, userID); err != nil {
			return err
		}

		var item models.ChecklistItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ErrNotFound, "checklist item not found")
			}
			return err
		}
		if item.CardID != cardID {
			return apperr.New(apperr.ErrNotFound, "checklist item not found")
		}
		return tx.Delete(&item).Error
	})
}
