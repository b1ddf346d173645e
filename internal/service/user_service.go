package service

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
	"github.com/j-h-711/MongMongVillage-BE/internal/repository"
	"github.com/j-h-711/MongMongVillage-BE/pkg/apperror"
	"github.com/j-h-711/MongMongVillage-BE/pkg/storage"
)

type UserService interface {
	GetUser(ctx context.Context, callerID, userID uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, callerID, userID uuid.UUID, input dto.UpdateUserRequest, image io.Reader, imageName string) (*model.User, error)
	DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error
}

type userService struct {
	userRepo     repository.UserRepository
	boardRepo    repository.BoardRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	reviewRepo   repository.ReviewRepository
	aggregator   *Aggregator
	imageStorage storage.ImageStorage
	search       SearchService
}

func NewUserService(
	userRepo repository.UserRepository,
	boardRepo repository.BoardRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	reviewRepo repository.ReviewRepository,
	aggregator *Aggregator,
	imageStorage storage.ImageStorage,
	search SearchService,
) UserService {
	return &userService{
		userRepo:     userRepo,
		boardRepo:    boardRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		reviewRepo:   reviewRepo,
		aggregator:   aggregator,
		imageStorage: imageStorage,
		search:       search,
	}
}

func (s *userService) GetUser(ctx context.Context, callerID, userID uuid.UUID) (*model.User, error) {
	if callerID != userID {
		return nil, apperror.New(http.StatusForbidden, "you can only access your own account", apperror.ErrForbidden)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, callerID, userID uuid.UUID, input dto.UpdateUserRequest, image io.Reader, imageName string) (*model.User, error) {
	if callerID != userID {
		return nil, apperror.New(http.StatusForbidden, "you can only update your own account", apperror.ErrForbidden)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Nickname != nil && *input.Nickname != user.Nickname {
		if _, err := s.userRepo.FindByNickname(ctx, *input.Nickname); err == nil {
			return nil, apperror.New(http.StatusBadRequest, "this nickname is already taken", apperror.ErrDuplicate)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Nickname = *input.Nickname
	}

	if input.Introduction != nil {
		user.Introduction = input.Introduction
	}

	var replaced []string
	if image != nil {
		url, err := s.imageStorage.UploadImage(ctx, image, "profiles", imageName)
		if err != nil {
			return nil, err
		}
		if user.ProfilePicture != nil {
			replaced = append(replaced, *user.ProfilePicture)
		}
		user.ProfilePicture = &url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	removeImages(ctx, s.imageStorage, replaced)

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes the account and everything it owns: boards (with
// their comments and likes), comments, likes and reviews. Aggregates of
// surviving boards and cafes are recomputed afterwards so no counter is
// left stale.
func (s *userService) DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error {
	if callerID != userID {
		return apperror.New(http.StatusForbidden, "you can only delete your own account", apperror.ErrForbidden)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "user does not exist", apperror.ErrNotFound)
		}
		return err
	}

	boards, err := s.boardRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	ownedBoards := make(map[uuid.UUID]bool, len(boards))
	for _, board := range boards {
		ownedBoards[board.ID] = true
	}

	comments, err := s.commentRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	likedBoardIDs, err := s.likeRepo.BoardIDsByUser(ctx, userID)
	if err != nil {
		return err
	}

	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	// Owned boards take their comments, likes and images with them.
	for _, board := range boards {
		if err := s.commentRepo.DeleteByBoard(ctx, board.ID); err != nil {
			return err
		}
		if err := s.likeRepo.DeleteByBoard(ctx, board.ID); err != nil {
			return err
		}
		if err := s.boardRepo.Delete(ctx, board.ID); err != nil {
			return err
		}
		removeImages(ctx, s.imageStorage, board.Images)
		if s.search != nil {
			if err := s.search.DeleteBoard(board.ID.String()); err != nil {
				log.Printf("failed to remove board %s from search index: %v", board.ID, err)
			}
		}
	}

	if err := s.commentRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.likeRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.reviewRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	for _, review := range reviews {
		removeImages(ctx, s.imageStorage, review.Images)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	if user.ProfilePicture != nil {
		removeImages(ctx, s.imageStorage, []string{*user.ProfilePicture})
	}

	// Surviving boards lose this user's comment refs.
	for _, comment := range comments {
		if ownedBoards[comment.BoardID] {
			continue
		}
		if err := s.boardRepo.RemoveCommentRef(ctx, comment.BoardID, comment.ID); err != nil {
			return err
		}
	}

	// Surviving boards the user liked get a fresh like count.
	for _, boardID := range likedBoardIDs {
		if ownedBoards[boardID] {
			continue
		}
		if err := s.recomputeLikeCount(ctx, boardID); err != nil {
			return err
		}
	}

	// Cafes the user reviewed get a fresh rating.
	recomputed := make(map[uuid.UUID]bool, len(reviews))
	for _, review := range reviews {
		if recomputed[review.CafeID] {
			continue
		}
		recomputed[review.CafeID] = true
		if err := s.recomputeRating(ctx, review.CafeID); err != nil {
			return err
		}
	}

	return nil
}

func (s *userService) recomputeLikeCount(ctx context.Context, boardID uuid.UUID) error {
	unlock := s.aggregator.LockBoard(boardID)
	defer unlock()

	_, err := s.aggregator.RecomputeBoardLikeCount(ctx, boardID)
	return err
}

func (s *userService) recomputeRating(ctx context.Context, cafeID uuid.UUID) error {
	unlock := s.aggregator.LockCafe(cafeID)
	defer unlock()

	_, err := s.aggregator.RecomputeCafeRating(ctx, cafeID)
	return err
}
