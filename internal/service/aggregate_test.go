package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

func TestRoundedMean(t *testing.T) {
	assert.Equal(t, float64(0), roundedMean(nil))
	assert.Equal(t, float64(0), roundedMean([]float64{}))
	assert.Equal(t, 4.0, roundedMean([]float64{4}))
	assert.Equal(t, 3.0, roundedMean([]float64{4, 2}))
	assert.Equal(t, 4.3, roundedMean([]float64{5, 4, 4}))
	assert.Equal(t, 4.7, roundedMean([]float64{5, 5, 4}))
	assert.Equal(t, 4.5, roundedMean([]float64{5, 4}))
}

func TestRecomputeCafeRating(t *testing.T) {
	boardRepo := newFakeBoardRepo()
	cafeRepo := newFakeCafeRepo()
	likeRepo := newFakeLikeRepo()
	reviewRepo := newFakeReviewRepo()
	aggregator := NewAggregator(boardRepo, cafeRepo, likeRepo, reviewRepo)
	ctx := context.Background()

	cafe := &model.Cafe{Name: "Mong Cafe"}
	require.NoError(t, cafeRepo.Create(ctx, cafe))

	rating, err := aggregator.RecomputeCafeRating(ctx, cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), rating)

	require.NoError(t, reviewRepo.Create(ctx, &model.Review{UserID: uuid.New(), CafeID: cafe.ID, Rating: 5}))
	require.NoError(t, reviewRepo.Create(ctx, &model.Review{UserID: uuid.New(), CafeID: cafe.ID, Rating: 4}))

	rating, err = aggregator.RecomputeCafeRating(ctx, cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating)
	assert.Equal(t, 4.5, cafe.Rating)
}

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	const iterations = 200
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("board:x")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, iterations, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := newKeyedMutex()

	// Holding one key must not block another.
	unlockA := km.Lock("board:a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("board:b")
		unlockB()
		close(done)
	}()

	<-done
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	km := newKeyedMutex()

	unlock := km.Lock("cafe:y")
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Len(t, km.locks, 0)
}
