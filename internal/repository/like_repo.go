package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

type LikeRepository interface {
	Find(ctx context.Context, userID, boardID uuid.UUID) (*model.Like, error)
	Create(ctx context.Context, like *model.Like) error
	// Delete removes the (user, board) pair and reports whether a row
	// actually existed.
	Delete(ctx context.Context, userID, boardID uuid.UUID) (bool, error)
	CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error)
	BoardIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, userID, boardID uuid.UUID) (*model.Like, error) {
	var like model.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		Delete(&model.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("board_id = ?", boardID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *likeRepository) BoardIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("board_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *likeRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Like{}, "board_id = ?", boardID).Error
}

func (r *likeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Like{}, "user_id = ?", userID).Error
}
