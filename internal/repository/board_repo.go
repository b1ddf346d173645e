package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	FindAll(ctx context.Context, category, sortBy string, offset, limit int) ([]*model.Board, int64, error)
	FindBest(ctx context.Context, limit int) ([]*model.Board, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*model.Board, int64, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Board, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateLikeCount(ctx context.Context, id uuid.UUID, count int) error
	AppendCommentRef(ctx context.Context, boardID, commentID uuid.UUID) error
	RemoveCommentRef(ctx context.Context, boardID, commentID uuid.UUID) error
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) FindAll(ctx context.Context, category, sortBy string, offset, limit int) ([]*model.Board, int64, error) {
	var boards []*model.Board
	var total int64

	query := r.db.WithContext(ctx).Preload("User")

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Model(&model.Board{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if sortBy == dto.SortLikes {
		query = query.Order("like_count DESC").Order("created_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Offset(offset).Limit(limit).Find(&boards).Error; err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}

func (r *boardRepository) FindBest(ctx context.Context, limit int) ([]*model.Board, error) {
	var boards []*model.Board
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("like_count DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepository) Search(ctx context.Context, query string, offset, limit int) ([]*model.Board, int64, error) {
	var boards []*model.Board
	var total int64

	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)

	if err := q.Model(&model.Board{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&boards).Error; err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}

func (r *boardRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Board, error) {
	var boards []*model.Board
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Board, error) {
	if len(ids) == 0 {
		return []*model.Board{}, nil
	}
	var boards []*model.Board
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *boardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id).Error
}

func (r *boardRepository) UpdateLikeCount(ctx context.Context, id uuid.UUID, count int) error {
	return r.db.WithContext(ctx).
		Model(&model.Board{}).
		Where("id = ?", id).
		Update("like_count", count).Error
}

// AppendCommentRef adds commentID to the tail of the board's ordered
// comment id list. The board row is locked for the duration so two
// concurrent comment writes cannot drop each other's ref.
func (r *boardRepository) AppendCommentRef(ctx context.Context, boardID, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board model.Board
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", boardID).
			First(&board).Error; err != nil {
			return err
		}

		board.CommentIDs = append(board.CommentIDs, commentID)
		return tx.Model(&model.Board{}).
			Where("id = ?", boardID).
			Update("comment_ids", board.CommentIDs).Error
	})
}

// RemoveCommentRef deletes commentID from the board's comment id list.
// A missing ref is an error: silently tolerating it would mask a drifted
// counter.
func (r *boardRepository) RemoveCommentRef(ctx context.Context, boardID, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board model.Board
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", boardID).
			First(&board).Error; err != nil {
			return err
		}

		remaining, found := board.CommentIDs.Remove(commentID)
		if !found {
			return fmt.Errorf("comment ref %s not present on board %s", commentID, boardID)
		}

		return tx.Model(&model.Board{}).
			Where("id = ?", boardID).
			Update("comment_ids", remaining).Error
	})
}
