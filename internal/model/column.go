package model

import (
	"github.com/google/uuid"
)

type Column struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"not null"`
	Color    string    `gorm:"not null;default:'#e0e0e0'"`
	Position int       `gorm:"not null"`

	Board Board `gorm:"foreignKey:BoardID"`
}
