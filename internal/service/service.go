// Package service implements the mutation core: every write resolves the
// acting user's access to the target board, validates the payload, applies
// the change, and appends the activity row, all inside one transaction.
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nextPosition returns the append position among siblings: max+1, or 0 when
// the parent has no children yet. Computed inside the caller's transaction;
// concurrent creates on the same parent can still race, which is accepted.
func nextPosition(tx *gorm.DB, model any, parentColumn string, parentID uuid.UUID) (int, error) {
	var maxPos int
	err := tx.Model(model).
		Where(parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos).Error
	return maxPos + 1, err
}
