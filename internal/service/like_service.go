package service

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
	"github.com/j-h-711/MongMongVillage-BE/internal/repository"
	"github.com/j-h-711/MongMongVillage-BE/pkg/apperror"
)

type LikeService interface {
	// ToggleLike likes the board if the caller has not liked it yet,
	// and unlikes it otherwise. The returned count is the fresh
	// denormalized like_count.
	ToggleLike(ctx context.Context, userID, boardID uuid.UUID) (*dto.LikeToggleResponse, error)
	IsLiked(ctx context.Context, userID, boardID uuid.UUID) (bool, error)
}

type likeService struct {
	likeRepo   repository.LikeRepository
	boardRepo  repository.BoardRepository
	aggregator *Aggregator
}

func NewLikeService(likeRepo repository.LikeRepository, boardRepo repository.BoardRepository, aggregator *Aggregator) LikeService {
	return &likeService{
		likeRepo:   likeRepo,
		boardRepo:  boardRepo,
		aggregator: aggregator,
	}
}

func (s *likeService) ToggleLike(ctx context.Context, userID, boardID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "board does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}

	// Mutation and recompute run under the board's key lock so two
	// concurrent toggles cannot publish a stale count.
	unlock := s.aggregator.LockBoard(boardID)
	defer unlock()

	var isLiked bool
	_, err := s.likeRepo.Find(ctx, userID, boardID)
	switch {
	case err == nil:
		deleted, err := s.likeRepo.Delete(ctx, userID, boardID)
		if err != nil {
			return nil, err
		}
		if !deleted {
			return nil, apperror.New(http.StatusBadRequest, "like does not exist", apperror.ErrBadRequest)
		}
		isLiked = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &model.Like{UserID: userID, BoardID: boardID}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			return nil, err
		}
		isLiked = true
	default:
		return nil, err
	}

	count, err := s.aggregator.RecomputeBoardLikeCount(ctx, boardID)
	if err != nil {
		// The like row is written; the counter is stale until the next
		// recompute. Logged for out-of-band repair.
		log.Printf("like count recompute failed for board %s: %v", boardID, err)
		return nil, err
	}

	return &dto.LikeToggleResponse{
		BoardID:   boardID,
		IsLiked:   isLiked,
		LikeCount: count,
	}, nil
}

func (s *likeService) IsLiked(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.New(http.StatusNotFound, "board does not exist", apperror.ErrNotFound)
		}
		return false, err
	}

	_, err := s.likeRepo.Find(ctx, userID, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
