package models

import (
	"time"

	"gorm.io/gorm"
)

// Table is a seat on the floor plan. CurrentSessionID is a lookup key only; the
// session row is owned by the ledger and outlives the occupancy. Version is
// bumped by every lifecycle write and guards concurrent writers.
//
// ActiveNumber mirrors Number while the table exists and is NULL once it is
// deleted, so the unique index covers live tables only.
type Table struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Number           int            `gorm:"not null;index" json:"number"`
	ActiveNumber     *int           `gorm:"uniqueIndex" json:"-"`
	Status           TableStatus    `gorm:"type:varchar(20);not null;default:'FREE'" json:"status"`
	CurrentSessionID *uint          `gorm:"index" json:"currentSessionId"`
	CurrentSession   *Session       `gorm:"-" json:"currentSession"`
	Version          uint           `gorm:"not null;default:0" json:"-"`
	CreatedAt        time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// Consistent reports whether the session reference agrees with the status.
func (t *Table) Consistent() bool {
	return (t.CurrentSessionID != nil) == (t.Status == TableOccupied)
}
