package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
	"github.com/j-h-711/MongMongVillage-BE/internal/repository"
	"github.com/j-h-711/MongMongVillage-BE/pkg/apperror"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, boardID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error)
	UpdateComment(ctx context.Context, userID, boardID, commentID uuid.UUID, input dto.UpdateCommentRequest) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID, boardID, commentID uuid.UUID) error
	GetUserComments(ctx context.Context, userID uuid.UUID) (*dto.UserCommentsResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	boardRepo   repository.BoardRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, boardRepo repository.BoardRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		boardRepo:   boardRepo,
		userRepo:    userRepo,
	}
}

// CreateComment writes the comment and appends its id to the board's
// ordered ref list in lockstep.
func (s *commentService) CreateComment(ctx context.Context, userID, boardID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error) {
	if err := s.requireBoard(ctx, boardID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		UserID:  userID,
		BoardID: boardID,
		Content: input.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.boardRepo.AppendCommentRef(ctx, boardID, comment.ID); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, userID, boardID, commentID uuid.UUID, input dto.UpdateCommentRequest) (*model.Comment, error) {
	if err := s.requireBoard(ctx, boardID); err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.BoardID != boardID {
		return nil, apperror.New(http.StatusNotFound, "comment does not belong to this board", apperror.ErrNotFound)
	}
	if comment.UserID != userID {
		return nil, apperror.New(http.StatusForbidden, "only the author can update this comment", apperror.ErrForbidden)
	}

	comment.Content = input.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes the comment and its ref on the board. A ref
// that is already missing surfaces as an error instead of a silent
// no-op.
func (s *commentService) DeleteComment(ctx context.Context, userID, boardID, commentID uuid.UUID) error {
	if err := s.requireBoard(ctx, boardID); err != nil {
		return err
	}

	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.BoardID != boardID {
		return apperror.New(http.StatusNotFound, "comment does not belong to this board", apperror.ErrNotFound)
	}
	if comment.UserID != userID {
		return apperror.New(http.StatusForbidden, "only the author can delete this comment", apperror.ErrForbidden)
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	return s.boardRepo.RemoveCommentRef(ctx, boardID, commentID)
}

func (s *commentService) GetUserComments(ctx context.Context, userID uuid.UUID) (*dto.UserCommentsResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}

	comments, err := s.commentRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserCommentsResponse{
		User: dto.AuthorResponse{
			ID:             user.ID.String(),
			Nickname:       user.Nickname,
			ProfilePicture: user.ProfilePicture,
		},
		Comments: comments,
	}, nil
}

func (s *commentService) requireBoard(ctx context.Context, boardID uuid.UUID) error {
	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "board does not exist", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, commentID uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "comment does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}
	return comment, nil
}
