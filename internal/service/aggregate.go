package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/j-h-711/MongMongVillage-BE/internal/repository"
)

// Aggregator keeps the denormalized counters consistent with their
// source-of-truth rows: cafe.rating with the review table and
// board.like_count with the like table. Every recompute reads a fresh
// snapshot; no incremental counter is trusted across calls.
//
// Writers must serialize per key: take LockBoard/LockCafe around the
// primary mutation plus the recompute, so two concurrent writers cannot
// publish a stale snapshot over a newer one.
type Aggregator struct {
	locks      *keyedMutex
	boardRepo  repository.BoardRepository
	cafeRepo   repository.CafeRepository
	likeRepo   repository.LikeRepository
	reviewRepo repository.ReviewRepository
}

func NewAggregator(
	boardRepo repository.BoardRepository,
	cafeRepo repository.CafeRepository,
	likeRepo repository.LikeRepository,
	reviewRepo repository.ReviewRepository,
) *Aggregator {
	return &Aggregator{
		locks:      newKeyedMutex(),
		boardRepo:  boardRepo,
		cafeRepo:   cafeRepo,
		likeRepo:   likeRepo,
		reviewRepo: reviewRepo,
	}
}

// LockBoard serializes like-count maintenance for one board.
func (a *Aggregator) LockBoard(id uuid.UUID) func() {
	return a.locks.Lock("board:" + id.String())
}

// LockCafe serializes rating maintenance for one cafe.
func (a *Aggregator) LockCafe(id uuid.UUID) func() {
	return a.locks.Lock("cafe:" + id.String())
}

// RecomputeCafeRating refreshes cafe.rating from the current review
// set. The caller holds the cafe lock.
func (a *Aggregator) RecomputeCafeRating(ctx context.Context, cafeID uuid.UUID) (float64, error) {
	ratings, err := a.reviewRepo.RatingsByCafe(ctx, cafeID)
	if err != nil {
		return 0, err
	}

	rating := roundedMean(ratings)
	if err := a.cafeRepo.UpdateRating(ctx, cafeID, rating); err != nil {
		return 0, err
	}
	return rating, nil
}

// RecomputeBoardLikeCount refreshes board.like_count from the current
// like rows. The caller holds the board lock.
func (a *Aggregator) RecomputeBoardLikeCount(ctx context.Context, boardID uuid.UUID) (int, error) {
	count, err := a.likeRepo.CountByBoard(ctx, boardID)
	if err != nil {
		return 0, err
	}

	if err := a.boardRepo.UpdateLikeCount(ctx, boardID, int(count)); err != nil {
		return 0, err
	}
	return int(count), nil
}

// roundedMean is the cafe rating formula: the arithmetic mean rounded
// to one decimal place, or 0 for an empty set.
func roundedMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return math.Round(sum/float64(len(values))*10) / 10
}
