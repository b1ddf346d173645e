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

const topRatedCafesCacheKey = "cache:cafes:top_rated"
const topRatedCafesCacheTTL = time.Minute

type CafeService interface {
	GetCafes(ctx context.Context, page dto.Pagination) (*dto.CafeListResponse, error)
	GetTopRatedCafes(ctx context.Context) ([]*model.Cafe, error)
	GetTop100Cafes(ctx context.Context) ([]*model.Cafe, error)
	SearchCafes(ctx context.Context, name string, page dto.Pagination) (*dto.CafeListResponse, error)
	GetCafeDetail(ctx context.Context, cafeID uuid.UUID, page dto.Pagination) (*dto.CafeDetailResponse, error)
	CreateCafe(ctx context.Context, input dto.CreateCafeRequest, image *dto.ImageFile) (*model.Cafe, error)
	ImportCafes(ctx context.Context, input dto.ImportCafesRequest) ([]*model.Cafe, error)
	UpdateCafe(ctx context.Context, cafeID uuid.UUID, input dto.UpdateCafeRequest, image *dto.ImageFile) (*model.Cafe, error)
}

type cafeService struct {
	cafeRepo     repository.CafeRepository
	reviewRepo   repository.ReviewRepository
	imageStorage storage.ImageStorage
	search       SearchService
	redisClient  *redis.Client
}

func NewCafeService(
	cafeRepo repository.CafeRepository,
	reviewRepo repository.ReviewRepository,
	imageStorage storage.ImageStorage,
	search SearchService,
	redisClient *redis.Client,
) CafeService {
	return &cafeService{
		cafeRepo:     cafeRepo,
		reviewRepo:   reviewRepo,
		imageStorage: imageStorage,
		search:       search,
		redisClient:  redisClient,
	}
}

func (s *cafeService) GetCafes(ctx context.Context, page dto.Pagination) (*dto.CafeListResponse, error) {
	cafes, total, err := s.cafeRepo.FindAll(ctx, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	return &dto.CafeListResponse{Cafes: cafes, Meta: page.Meta(total)}, nil
}

func (s *cafeService) GetTopRatedCafes(ctx context.Context) ([]*model.Cafe, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, topRatedCafesCacheKey).Result(); err == nil {
			var cafes []*model.Cafe
			if err := json.Unmarshal([]byte(cached), &cafes); err == nil {
				return cafes, nil
			}
		}
	}

	cafes, err := s.cafeRepo.FindTopRated(ctx, dto.TopRatedCafesLimit)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(cafes); err == nil {
			if err := s.redisClient.Set(ctx, topRatedCafesCacheKey, payload, topRatedCafesCacheTTL).Err(); err != nil {
				log.Printf("failed to cache top rated cafes: %v", err)
			}
		}
	}

	return cafes, nil
}

func (s *cafeService) GetTop100Cafes(ctx context.Context) ([]*model.Cafe, error) {
	return s.cafeRepo.FindTopRated(ctx, dto.Top100CafesLimit)
}

func (s *cafeService) SearchCafes(ctx context.Context, name string, page dto.Pagination) (*dto.CafeListResponse, error) {
	cafes, total, err := s.cafeRepo.Search(ctx, name, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	return &dto.CafeListResponse{Cafes: cafes, Meta: page.Meta(total)}, nil
}

func (s *cafeService) GetCafeDetail(ctx context.Context, cafeID uuid.UUID, page dto.Pagination) (*dto.CafeDetailResponse, error) {
	cafe, err := s.findCafe(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.FindByCafe(ctx, cafeID, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	return &dto.CafeDetailResponse{
		Cafe:                 cafe,
		Reviews:              reviews,
		TotalNumberOfReviews: total,
	}, nil
}

func (s *cafeService) CreateCafe(ctx context.Context, input dto.CreateCafeRequest, image *dto.ImageFile) (*model.Cafe, error) {
	cafe := cafeFromRequest(input)

	if image != nil {
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, "cafes", image.FileName)
		if err != nil {
			return nil, err
		}
		cafe.Image = url
	}

	if err := s.cafeRepo.Create(ctx, cafe); err != nil {
		return nil, err
	}

	s.indexCafe(cafe)

	return cafe, nil
}

// ImportCafes is the admin batch import used to seed listings from
// public datasets.
func (s *cafeService) ImportCafes(ctx context.Context, input dto.ImportCafesRequest) ([]*model.Cafe, error) {
	cafes := make([]*model.Cafe, 0, len(input.Cafes))
	for _, req := range input.Cafes {
		cafes = append(cafes, cafeFromRequest(req))
	}

	if err := s.cafeRepo.CreateMany(ctx, cafes); err != nil {
		return nil, err
	}

	for _, cafe := range cafes {
		s.indexCafe(cafe)
	}

	return cafes, nil
}

func (s *cafeService) UpdateCafe(ctx context.Context, cafeID uuid.UUID, input dto.UpdateCafeRequest, image *dto.ImageFile) (*model.Cafe, error) {
	cafe, err := s.findCafe(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		cafe.Name = *input.Name
	}
	if input.RoadAddr != nil {
		cafe.RoadAddr = *input.RoadAddr
	}
	if input.RegionAddr != nil {
		cafe.RegionAddr = *input.RegionAddr
	}
	if input.ZipCode != nil {
		cafe.ZipCode = *input.ZipCode
	}
	if input.Intro != nil {
		cafe.Intro = input.Intro
	}
	if input.Menu != nil {
		cafe.Menu = input.Menu
	}
	if input.OperatingTime != nil {
		cafe.OperatingTime = input.OperatingTime
	}
	if input.PhoneNumber != nil {
		cafe.PhoneNumber = *input.PhoneNumber
	}
	if input.Latitude != nil {
		cafe.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		cafe.Longitude = *input.Longitude
	}

	if image != nil {
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, "cafes", image.FileName)
		if err != nil {
			return nil, err
		}
		cafe.Image = url
	}

	if err := s.cafeRepo.Update(ctx, cafe); err != nil {
		return nil, err
	}

	s.indexCafe(cafe)

	return cafe, nil
}

func (s *cafeService) findCafe(ctx context.Context, cafeID uuid.UUID) (*model.Cafe, error) {
	cafe, err := s.cafeRepo.FindByID(ctx, cafeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "cafe does not exist", apperror.ErrNotFound)
		}
		return nil, err
	}
	return cafe, nil
}

func (s *cafeService) indexCafe(cafe *model.Cafe) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexCafe(cafe); err != nil {
		log.Printf("failed to index cafe %s: %v", cafe.ID, err)
	}
}

func cafeFromRequest(input dto.CreateCafeRequest) *model.Cafe {
	return &model.Cafe{
		Name:          input.Name,
		RoadAddr:      input.RoadAddr,
		RegionAddr:    input.RegionAddr,
		ZipCode:       input.ZipCode,
		Intro:         input.Intro,
		Menu:          input.Menu,
		OperatingTime: input.OperatingTime,
		PhoneNumber:   input.PhoneNumber,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Rating:        0,
	}
}
