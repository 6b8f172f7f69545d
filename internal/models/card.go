package models

import (
	"time"

	"github.com/google/uuid"
)

// Card is a work item within a list.
type Card struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `json:"description"`
	ListID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"list_id"`
	Position    int        `gorm:"default:0" json:"position"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Assignments []CardAssignment `gorm:"foreignKey:CardID" json:"assignments,omitempty"`
	Attachments []Attachment     `gorm:"foreignKey:CardID" json:"attachments,omitempty"`
	Checklist   []ChecklistItem  `gorm:"foreignKey:CardID" json:"checklists,omitempty"`
}
