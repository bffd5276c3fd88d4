package model

import (
	"github.com/google/uuid"
)

type TaskLabel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_labels_pair"`
	LabelID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_labels_pair"`

	Task  Task  `gorm:"foreignKey:TaskID"`
	Label Label `gorm:"foreignKey:LabelID"`
}
