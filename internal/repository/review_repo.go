package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindAll(ctx context.Context) ([]*model.Review, error)
	FindByCafe(ctx context.Context, cafeID uuid.UUID, offset, limit int) ([]*model.Review, int64, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	// RatingsByCafe reads a fresh snapshot of all rating values for the
	// cafe; the aggregate recompute never trusts an incremental counter.
	RatingsByCafe(ctx context.Context, cafeID uuid.UUID) ([]float64, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Review, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]*model.Review, error) {
	var reviews []*model.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByCafe(ctx context.Context, cafeID uuid.UUID, offset, limit int) ([]*model.Review, int64, error) {
	var reviews []*model.Review
	var total int64

	q := r.db.WithContext(ctx).Where("cafe_id = ?", cafeID)

	if err := q.Model(&model.Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, "id = ?", id).Error
}

func (r *reviewRepository) RatingsByCafe(ctx context.Context, cafeID uuid.UUID) ([]float64, error) {
	var ratings []float64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("cafe_id = ?", cafeID).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *reviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Review, error) {
	var reviews []*model.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, "user_id = ?", userID).Error
}
