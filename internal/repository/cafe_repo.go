package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

type CafeRepository interface {
	Create(ctx context.Context, cafe *model.Cafe) error
	CreateMany(ctx context.Context, cafes []*model.Cafe) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cafe, error)
	FindAll(ctx context.Context, offset, limit int) ([]*model.Cafe, int64, error)
	FindTopRated(ctx context.Context, limit int) ([]*model.Cafe, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*model.Cafe, int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Cafe, error)
	Update(ctx context.Context, cafe *model.Cafe) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type cafeRepository struct {
	db *gorm.DB
}

func NewCafeRepository(db *gorm.DB) CafeRepository {
	return &cafeRepository{db: db}
}

func (r *cafeRepository) Create(ctx context.Context, cafe *model.Cafe) error {
	return r.db.WithContext(ctx).Create(cafe).Error
}

func (r *cafeRepository) CreateMany(ctx context.Context, cafes []*model.Cafe) error {
	if len(cafes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cafes).Error
}

func (r *cafeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Cafe, error) {
	var cafe model.Cafe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cafe).Error; err != nil {
		return nil, err
	}
	return &cafe, nil
}

func (r *cafeRepository) FindAll(ctx context.Context, offset, limit int) ([]*model.Cafe, int64, error) {
	var cafes []*model.Cafe
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Cafe{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&cafes).Error; err != nil {
		return nil, 0, err
	}

	return cafes, total, nil
}

func (r *cafeRepository) FindTopRated(ctx context.Context, limit int) ([]*model.Cafe, error) {
	var cafes []*model.Cafe
	if err := r.db.WithContext(ctx).
		Order("rating DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}

func (r *cafeRepository) Search(ctx context.Context, query string, offset, limit int) ([]*model.Cafe, int64, error) {
	var cafes []*model.Cafe
	var total int64

	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).
		Where("name ILIKE ? OR road_addr ILIKE ? OR region_addr ILIKE ?", pattern, pattern, pattern)

	if err := q.Model(&model.Cafe{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&cafes).Error; err != nil {
		return nil, 0, err
	}

	return cafes, total, nil
}

func (r *cafeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Cafe, error) {
	if len(ids) == 0 {
		return []*model.Cafe{}, nil
	}
	var cafes []*model.Cafe
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}

func (r *cafeRepository) Update(ctx context.Context, cafe *model.Cafe) error {
	return r.db.WithContext(ctx).Save(cafe).Error
}

func (r *cafeRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Cafe{}).
		Where("id = ?", id).
		Update("rating", rating).Error
}
