package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardMemberRepository struct {
	db *gorm.DB
}

type BoardMemberRepositoryInterface interface {
	Add(ctx context.Context, boardID, userID uuid.UUID, role string) error
	Remove(ctx context.Context, boardID, userID uuid.UUID) error
	GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error)
	IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
}

var _ BoardMemberRepositoryInterface = (*BoardMemberRepository)(nil)

func NewBoardMemberRepository(db *gorm.DB) *BoardMemberRepository {
	return &BoardMemberRepository{db: db}
}

// Add inserts a membership row. Adding an existing member is a no-op; the
// existing role is left untouched.
func (r *BoardMemberRepository) Add(ctx context.Context, boardID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.BoardMember
		err := tx.Where("board_id = ? AND user_id = ?", boardID, userID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		member := model.BoardMember{
			BoardID: boardID,
			UserID:  userID,
			Role:    role,
		}
		return tx.Create(&member).Error
	})
}

func (r *BoardMemberRepository) Remove(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.BoardMember{}).Error
}

func (r *BoardMemberRepository) GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error) {
	var members []model.BoardMember
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Find(&members).Error
	return members, err
}

func (r *BoardMemberRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}
