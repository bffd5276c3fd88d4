package model

import (
	"github.com/google/uuid"
)

type TaskAssignee struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_assignees_pair"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_assignees_pair"`

	Task Task `gorm:"foreignKey:TaskID"`
	User User `gorm:"foreignKey:UserID"`
}
