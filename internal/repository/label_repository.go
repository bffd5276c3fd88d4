package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type LabelRepository struct {
	db *gorm.DB
}

type LabelRepositoryInterface interface {
	Create(ctx context.Context, label *model.Label) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error)
	GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Label, error)
	GetByTask(ctx context.Context, taskID uuid.UUID) ([]model.Label, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

var _ LabelRepositoryInterface = (*LabelRepository)(nil)

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// Create adds a new label to the board's catalog
func (r *LabelRepository) Create(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Create(label).Error
}

func (r *LabelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	var label model.Label
	if err := r.db.WithContext(ctx).First(&label, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &label, nil
}

// GetByBoard retrieves the label catalog of a board
func (r *LabelRepository) GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).Where("board_id = ?", boardID).Find(&labels)
	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

// GetByTask retrieves the labels attached to a task. Join rows pointing at
// deleted labels drop out of the join.
func (r *LabelRepository) GetByTask(ctx context.Context, taskID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).
		Joins("JOIN task_labels ON task_labels.label_id = labels.id").
		Where("task_labels.task_id = ?", taskID).
		Find(&labels)
	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

// DeleteCascade removes the label and every task attachment referencing it.
func (r *LabelRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&model.TaskLabel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Label{}).Error
	})
}
