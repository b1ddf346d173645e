package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
	"github.com/j-h-711/MongMongVillage-BE/internal/repository"
	"github.com/j-h-711/MongMongVillage-BE/pkg/apperror"
	"github.com/j-h-711/MongMongVillage-BE/pkg/storage"
)

const bestBoardsCacheKey = "cache:boards:best"
const bestBoardsCacheTTL = time.Minute

type BoardService interface {
	CreateBoard(ctx context.Context, userID uuid.UUID, input dto.CreateBoardRequest, images []dto.ImageFile) (*model.Board, error)
	UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, input dto.UpdateBoardRequest, images []dto.ImageFile) (*model.Board, error)
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
	GetBoards(ctx context.Context, sortBy string, page dto.Pagination) (*dto.BoardListResponse, error)
	GetCategoryBoards(ctx context.Context, category string, page dto.Pagination) (*dto.BoardListResponse, error)
	GetBestBoards(ctx context.Context) ([]*model.Board, error)
	SearchBoards(ctx context.Context, content string, page dto.Pagination) (*dto.BoardListResponse, error)
	GetBoardDetail(ctx context.Context, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	GetUserBoards(ctx context.Context, userID uuid.UUID) ([]*model.Board, error)
	GetLikedBoards(ctx context.Context, userID uuid.UUID) ([]*model.Board, error)
}

type boardService struct {
	boardRepo     repository.BoardRepository
	commentRepo   repository.CommentRepository
	likeRepo      repository.LikeRepository
	imageStorage  storage.ImageStorage
	search        SearchService
	redisClient   *redis.Client
	rateLimit     time.Duration
}

func NewBoardService(
	boardRepo repository.BoardRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	imageStorage storage.ImageStorage,
	search SearchService,
	redisClient *redis.Client,
	rateLimit time.Duration,
) BoardService {
	return &boardService{
		boardRepo:    boardRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		imageStorage: imageStorage,
		search:       search,
		redisClient:  redisClient,
		rateLimit:    rateLimit,
	}
}

func (s *boardService) CreateBoard(ctx context.Context, userID uuid.UUID, input dto.CreateBoardRequest, images []dto.ImageFile) (*model.Board, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, ActionCreateBoard, s.rateLimit)
	if err != nil {
		log.Printf("rate limit check failed, allowing request: %v", err)
	} else if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "you are posting too fast, try again later", apperror.ErrRateLimitExceeded)
	}

	imageURLs, err := s.uploadImages(ctx, images)
	if err != nil {
		if clearErr := ClearRateLimit(ctx, s.redisClient, userID, ActionCreateBoard); clearErr != nil {
			log.Printf("failed to clear rate limit: %v", clearErr)
		}
		return nil, err
	}

	board := &model.Board{
		UserID:     userID,
		Title:      input.Title,
		Content:    input.Content,
		Images:     imageURLs,
		Category:   input.Category,
		AnimalType: input.AnimalType,
		LikeCount:  0,
		CommentIDs: model.UUIDList{},
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}

	s.indexBoard(board)
	s.invalidateBestCache(ctx)

	return board, nil
}

func (s *boardService) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, input dto.UpdateBoardRequest, images []dto.ImageFile) (*model.Board, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if board.UserID != userID {
		return nil, apperror.New(http.StatusForbidden, "only the author can update this post", apperror.ErrForbidden)
	}

	board.Title = input.Title
	board.Content = input.Content
	board.Category = input.Category
	board.AnimalType = input.AnimalType

	var replaced model.StringList
	if len(images) > 0 {
		imageURLs, err := s.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		replaced = board.Images
		board.Images = imageURLs
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}

	removeImages(ctx, s.imageStorage, replaced)
	s.indexBoard(board)

	return board, nil
}

// DeleteBoard removes the post together with its comments and likes.
// Orphaned rows are a bug, not a policy.
func (s *boardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return err
	}

	if board.UserID != userID {
		return apperror.New(http.StatusForbidden, "only the author can delete this post", apperror.ErrForbidden)
	}

	if err := s.commentRepo.DeleteByBoard(ctx, boardID); err != nil {
		return err
	}
	if err := s.likeRepo.DeleteByBoard(ctx, boardID); err != nil {
		return err
	}
	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return err
	}

	removeImages(ctx, s.imageStorage, board.Images)

	if s.search != nil {
		if err := s.search.DeleteBoard(boardID.String()); err != nil {
			log.Printf("failed to remove board %s from search index: %v", boardID, err)
		}
	}
	s.invalidateBestCache(ctx)

	return nil
}

func (s *boardService) GetBoards(ctx context.Context, sortBy string, page dto.Pagination) (*dto.BoardListResponse, error) {
	boards, total, err := s.boardRepo.FindAll(ctx, "", sortBy, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	return &dto.BoardListResponse{Boards: boards, Meta: page.Meta(total)}, nil
}

func (s *boardService) GetCategoryBoards(ctx context.Context, category string, page dto.Pagination) (*dto.BoardListResponse, error) {
	if !model.ValidCategory(category) {
		return nil, apperror.New(http.StatusBadRequest, "unknown board category", apperror.ErrBadRequest)
	}

	boards, total, err := s.boardRepo.FindAll(ctx, category, dto.SortLatest, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	return &dto.BoardListResponse{Boards: boards, Meta: page.Meta(total)}, nil
}

func (s *boardService) GetBestBoards(ctx context.Context) ([]*model.Board, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, bestBoardsCacheKey).Result(); err == nil {
			var boards []*model.Board
			if err := json.Unmarshal([]byte(cached), &boards); err == nil {
				return boards, nil
			}
		}
	}

	boards, err := s.boardRepo.FindBest(ctx, dto.BestBoardsLimit)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(boards); err == nil {
			if err := s.redisClient.Set(ctx, bestBoardsCacheKey, payload, bestBoardsCacheTTL).Err(); err != nil {
				log.Printf("failed to cache best boards: %v", err)
			}
		}
	}

	return boards, nil
}

func (s *boardService) SearchBoards(ctx context.Context, content string, page dto.Pagination) (*dto.BoardListResponse, error) {
	boards, total, err := s.boardRepo.Search(ctx, content, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	return &dto.BoardListResponse{Boards: boards, Meta: page.Meta(total)}, nil
}

func (s *boardService) GetBoardDetail(ctx context.Context, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	return &dto.BoardDetailResponse{Board: board, Comments: comments}, nil
}

func (s *boardService) GetUserBoards(ctx context.Context, userID uuid.UUID) ([]*model.Board, error) {
	return s.boardRepo.FindByUser(ctx, userID)
}

func (s *boardService) GetLikedBoards(ctx context.Context, userID uuid.UUID) ([]*model.Board, error) {
	ids, err := s.likeRepo.BoardIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	boards, err := s.boardRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve most-recently-liked-first order.
	byID := make(map[uuid.UUID]*model.Board, len(boards))
	for _, b := range boards {
		byID[b.ID] = b
	}
	ordered := make([]*model.Board, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}

	return ordered, nil
}

func (s *boardService) findBoard(ctx context.Context, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "board does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}
	return board, nil
}

func (s *boardService) uploadImages(ctx context.Context, images []dto.ImageFile) (model.StringList, error) {
	urls := model.StringList{}
	for _, img := range images {
		url, err := s.imageStorage.UploadImage(ctx, img.Reader, "boards", img.FileName)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *boardService) indexBoard(board *model.Board) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexBoard(board); err != nil {
		log.Printf("failed to index board %s: %v", board.ID, err)
	}
}

func (s *boardService) invalidateBestCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, bestBoardsCacheKey).Err(); err != nil {
		log.Printf("failed to invalidate best boards cache: %v", err)
	}
}
