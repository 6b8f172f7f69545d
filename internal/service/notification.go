package service

import (
	"context"
	"errors"

	"boardify-backend/internal/apperr"
	"boardify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var rows []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error) {
	var row models.Notification
	db := s.db.WithContext(ctx)
	err := db.First(&row, "id = ? AND user_id = ?", notificationID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "notification not found")
		}
		return nil, err
	}
	row.IsRead = true
	if err := db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
