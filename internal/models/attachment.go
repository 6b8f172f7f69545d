package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment records an uploaded file on a card. Filename is the original
// name shown to users; StoredName is the timestamp-prefixed blob key.
type Attachment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CardID     uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	StoredName string    `gorm:"size:500;not null" json:"stored_name"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
