package model

import (
	"time"

	"github.com/google/uuid"
)

// Task carries priority and due date as caller-supplied strings; the source
// system never validated either, so neither do we.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Priority    string `gorm:"not null;default:'low'"`
	DueDate     string
	Position    int       `gorm:"not null"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Board   Board  `gorm:"foreignKey:BoardID"`
	Column  Column `gorm:"foreignKey:ColumnID"`
	Creator User   `gorm:"foreignKey:CreatedBy"`
}
