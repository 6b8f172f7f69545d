package activity

import (
	"encoding/json"

	"boardify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedLimit caps the default activity feed. Older rows are kept, just not
// returned.
const FeedLimit = 50

// Record appends one activity row. It must be called with the same
// transaction handle as the mutation it narrates so neither can commit
// without the other.
func Record(tx *gorm.DB, boardID, userID uuid.UUID, action, entityType string, entityID uuid.UUID, description string, meta any) error {
	row := models.Activity{
		ID:          uuid.New(),
		BoardID:     boardID,
		UserID:      userID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
	}
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		row.Meta = datatypes.JSON(raw)
	}
	return tx.Create(&row).Error
}

// Feed returns the board's most recent activity, newest first.
func Feed(db *gorm.DB, boardID uuid.UUID) ([]models.Activity, error) {
	var rows []models.Activity
	err := db.Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(FeedLimit).
		Preload("User").
		Find(&rows).Error
	return rows, err
}
