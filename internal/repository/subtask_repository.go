package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type SubtaskRepository struct {
	db *gorm.DB
}

type SubtaskRepositoryInterface interface {
	CreateAtEnd(ctx context.Context, subtask *model.Subtask) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subtask, error)
	GetByTask(ctx context.Context, taskID uuid.UUID) ([]model.Subtask, error)
	Update(ctx context.Context, subtask *model.Subtask) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByTask(ctx context.Context, taskID uuid.UUID) (total int64, completed int64, err error)
}

var _ SubtaskRepositoryInterface = (*SubtaskRepository)(nil)

func NewSubtaskRepository(db *gorm.DB) *SubtaskRepository {
	return &SubtaskRepository{db: db}
}

// CreateAtEnd appends the subtask to its task: position = current sibling count.
func (r *SubtaskRepository) CreateAtEnd(ctx context.Context, subtask *model.Subtask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Subtask{}).Where("task_id = ?", subtask.TaskID).Count(&count).Error; err != nil {
			return err
		}
		subtask.Position = int(count)
		return tx.Create(subtask).Error
	})
}

func (r *SubtaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subtask, error) {
	var subtask model.Subtask
	if err := r.db.WithContext(ctx).First(&subtask, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubtaskNotFound
		}
		return nil, err
	}
	return &subtask, nil
}

func (r *SubtaskRepository) GetByTask(ctx context.Context, taskID uuid.UUID) ([]model.Subtask, error) {
	var subtasks []model.Subtask
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("position").Find(&subtasks).Error
	return subtasks, err
}

func (r *SubtaskRepository) Update(ctx context.Context, subtask *model.Subtask) error {
	return r.db.WithContext(ctx).Save(subtask).Error
}

func (r *SubtaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Subtask{}, "id = ?", id).Error
}

// CountByTask returns the board view's {total, completed} pair for a task.
func (r *SubtaskRepository) CountByTask(ctx context.Context, taskID uuid.UUID) (int64, int64, error) {
	var total, completed int64
	if err := r.db.WithContext(ctx).Model(&model.Subtask{}).
		Where("task_id = ?", taskID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Subtask{}).
		Where("task_id = ? AND completed = ?", taskID, true).Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}
