package service

import (
	"context"
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

type ReviewService interface {
	CreateReview(ctx context.Context, userID, cafeID uuid.UUID, input dto.CreateReviewRequest, images []dto.ImageFile) (*model.Review, error)
	GetReviews(ctx context.Context) ([]*model.Review, error)
	GetReview(ctx context.Context, reviewID uuid.UUID) (*model.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, input dto.UpdateReviewRequest, images []dto.ImageFile) (*model.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	cafeRepo     repository.CafeRepository
	userRepo     repository.UserRepository
	aggregator   *Aggregator
	imageStorage storage.ImageStorage
	redisClient  *redis.Client
	rateLimit    time.Duration
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	cafeRepo repository.CafeRepository,
	userRepo repository.UserRepository,
	aggregator *Aggregator,
	imageStorage storage.ImageStorage,
	redisClient *redis.Client,
	rateLimit time.Duration,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		cafeRepo:     cafeRepo,
		userRepo:     userRepo,
		aggregator:   aggregator,
		imageStorage: imageStorage,
		redisClient:  redisClient,
		rateLimit:    rateLimit,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID, cafeID uuid.UUID, input dto.CreateReviewRequest, images []dto.ImageFile) (*model.Review, error) {
	if _, err := s.cafeRepo.FindByID(ctx, cafeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "cafe does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, ActionCreateReview, s.rateLimit)
	if err != nil {
		log.Printf("rate limit check failed, allowing request: %v", err)
	} else if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "you are posting reviews too fast, try again later", apperror.ErrRateLimitExceeded)
	}

	imageURLs, err := s.uploadImages(ctx, images)
	if err != nil {
		if clearErr := ClearRateLimit(ctx, s.redisClient, userID, ActionCreateReview); clearErr != nil {
			log.Printf("failed to clear rate limit: %v", clearErr)
		}
		return nil, err
	}

	review := &model.Review{
		UserID:  userID,
		CafeID:  cafeID,
		Title:   input.Title,
		Rating:  input.Rating,
		Content: input.Content,
		Images:  imageURLs,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.recomputeRating(ctx, cafeID); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) GetReviews(ctx context.Context) ([]*model.Review, error) {
	return s.reviewRepo.FindAll(ctx)
}

func (s *reviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*model.Review, error) {
	return s.findReview(ctx, reviewID)
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, input dto.UpdateReviewRequest, images []dto.ImageFile) (*model.Review, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		return nil, apperror.New(http.StatusForbidden, "only the author can update this review", apperror.ErrForbidden)
	}

	if input.Title != nil {
		review.Title = *input.Title
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Content != nil {
		review.Content = *input.Content
	}

	var replaced model.StringList
	if len(images) > 0 {
		imageURLs, err := s.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		replaced = review.Images
		review.Images = imageURLs
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	removeImages(ctx, s.imageStorage, replaced)

	if err := s.recomputeRating(ctx, review.CafeID); err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview allows the author or an admin. The role comes from the
// store at call time, not from the token, so a demoted admin loses the
// ability immediately.
func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil || !user.IsAdmin() {
			return apperror.New(http.StatusForbidden, "only the author or an admin can delete this review", apperror.ErrForbidden)
		}
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	removeImages(ctx, s.imageStorage, review.Images)

	return s.recomputeRating(ctx, review.CafeID)
}

func (s *reviewService) recomputeRating(ctx context.Context, cafeID uuid.UUID) error {
	unlock := s.aggregator.LockCafe(cafeID)
	defer unlock()

	if _, err := s.aggregator.RecomputeCafeRating(ctx, cafeID); err != nil {
		return err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Del(ctx, topRatedCafesCacheKey).Err(); err != nil {
			log.Printf("failed to invalidate top rated cafes cache: %v", err)
		}
	}

	return nil
}

func (s *reviewService) findReview(ctx context.Context, reviewID uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "review does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) uploadImages(ctx context.Context, images []dto.ImageFile) (model.StringList, error) {
	urls := model.StringList{}
	for _, img := range images {
		url, err := s.imageStorage.UploadImage(ctx, img.Reader, "reviews", img.FileName)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
