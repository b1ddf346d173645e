package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

// In-memory repository fakes. They implement just enough of the store
// semantics for the service tests: not-found maps to
// gorm.ErrRecordNotFound, the same sentinel the real repositories
// surface.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByNickname(ctx context.Context, nickname string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Nickname == nickname {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeBoardRepo struct {
	mu     sync.Mutex
	boards map[uuid.UUID]*model.Board
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: make(map[uuid.UUID]*model.Board)}
}

func (r *fakeBoardRepo) Create(ctx context.Context, board *model.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}
	board.CreatedAt = time.Now()
	r.boards[board.ID] = board
	return nil
}

func (r *fakeBoardRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return board, nil
}

func (r *fakeBoardRepo) FindAll(ctx context.Context, category, sortBy string, offset, limit int) ([]*model.Board, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*model.Board
	for _, b := range r.boards {
		if category != "" && b.Category != category {
			continue
		}
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool {
		if sortBy == dto.SortLikes && all[i].LikeCount != all[j].LikeCount {
			return all[i].LikeCount > all[j].LikeCount
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeBoardRepo) FindBest(ctx context.Context, limit int) ([]*model.Board, error) {
	boards, _, err := r.FindAll(ctx, "", dto.SortLikes, 0, limit)
	return boards, err
}

func (r *fakeBoardRepo) Search(ctx context.Context, query string, offset, limit int) ([]*model.Board, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.Board
	for _, b := range r.boards {
		if strings.Contains(b.Title, query) || strings.Contains(b.Content, query) {
			matched = append(matched, b)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeBoardRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var boards []*model.Board
	for _, b := range r.boards {
		if b.UserID == userID {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

func (r *fakeBoardRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var boards []*model.Board
	for _, id := range ids {
		if b, ok := r.boards[id]; ok {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

func (r *fakeBoardRepo) Update(ctx context.Context, board *model.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[board.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.boards[board.ID] = board
	return nil
}

func (r *fakeBoardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, id)
	return nil
}

func (r *fakeBoardRepo) UpdateLikeCount(ctx context.Context, id uuid.UUID, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	board.LikeCount = count
	return nil
}

func (r *fakeBoardRepo) AppendCommentRef(ctx context.Context, boardID, commentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[boardID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	board.CommentIDs = append(board.CommentIDs, commentID)
	return nil
}

func (r *fakeBoardRepo) RemoveCommentRef(ctx context.Context, boardID, commentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[boardID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	trimmed, found := board.CommentIDs.Remove(commentID)
	if !found {
		return fmt.Errorf("comment %s not referenced by board %s", commentID, boardID)
	}
	board.CommentIDs = trimmed
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*model.Comment)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (r *fakeCommentRepo) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []*model.Comment
	for _, cm := range r.comments {
		if cm.BoardID == boardID {
			comments = append(comments, cm)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *fakeCommentRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []*model.Comment
	for _, cm := range r.comments {
		if cm.UserID == userID {
			comments = append(comments, cm)
		}
	}
	return comments, nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cm := range r.comments {
		if cm.BoardID == boardID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cm := range r.comments {
		if cm.UserID == userID {
			delete(r.comments, id)
		}
	}
	return nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[uuid.UUID]*model.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[uuid.UUID]*model.Like)}
}

func (r *fakeLikeRepo) Find(ctx context.Context, userID, boardID uuid.UUID) (*model.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == userID && l.BoardID == boardID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLikeRepo) Create(ctx context.Context, like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == like.UserID && l.BoardID == like.BoardID {
			return gorm.ErrDuplicatedKey
		}
	}
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	like.CreatedAt = time.Now()
	r.likes[like.ID] = like
	return nil
}

func (r *fakeLikeRepo) Delete(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.UserID == userID && l.BoardID == boardID {
			delete(r.likes, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.likes {
		if l.BoardID == boardID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) BoardIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var withTime []*model.Like
	for _, l := range r.likes {
		if l.UserID == userID {
			withTime = append(withTime, l)
		}
	}
	sort.Slice(withTime, func(i, j int) bool {
		return withTime[i].CreatedAt.After(withTime[j].CreatedAt)
	})
	ids := make([]uuid.UUID, 0, len(withTime))
	for _, l := range withTime {
		ids = append(ids, l.BoardID)
	}
	return ids, nil
}

func (r *fakeLikeRepo) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.BoardID == boardID {
			delete(r.likes, id)
		}
	}
	return nil
}

func (r *fakeLikeRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.UserID == userID {
			delete(r.likes, id)
		}
	}
	return nil
}

type fakeCafeRepo struct {
	mu    sync.Mutex
	cafes map[uuid.UUID]*model.Cafe
}

func newFakeCafeRepo() *fakeCafeRepo {
	return &fakeCafeRepo{cafes: make(map[uuid.UUID]*model.Cafe)}
}

func (r *fakeCafeRepo) Create(ctx context.Context, cafe *model.Cafe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cafe.ID == uuid.Nil {
		cafe.ID = uuid.New()
	}
	cafe.CreatedAt = time.Now()
	r.cafes[cafe.ID] = cafe
	return nil
}

func (r *fakeCafeRepo) CreateMany(ctx context.Context, cafes []*model.Cafe) error {
	for _, cafe := range cafes {
		if err := r.Create(ctx, cafe); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCafeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cafe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cafe, ok := r.cafes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cafe, nil
}

func (r *fakeCafeRepo) FindAll(ctx context.Context, offset, limit int) ([]*model.Cafe, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*model.Cafe
	for _, c := range r.cafes {
		all = append(all, c)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeCafeRepo) FindTopRated(ctx context.Context, limit int) ([]*model.Cafe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*model.Cafe
	for _, c := range r.cafes {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Rating != all[j].Rating {
			return all[i].Rating > all[j].Rating
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeCafeRepo) Search(ctx context.Context, query string, offset, limit int) ([]*model.Cafe, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.Cafe
	for _, c := range r.cafes {
		if strings.Contains(c.Name, query) || strings.Contains(c.RoadAddr, query) || strings.Contains(c.RegionAddr, query) {
			matched = append(matched, c)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeCafeRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Cafe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cafes []*model.Cafe
	for _, id := range ids {
		if c, ok := r.cafes[id]; ok {
			cafes = append(cafes, c)
		}
	}
	return cafes, nil
}

func (r *fakeCafeRepo) Update(ctx context.Context, cafe *model.Cafe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cafes[cafe.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.cafes[cafe.ID] = cafe
	return nil
}

func (r *fakeCafeRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cafe, ok := r.cafes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cafe.Rating = rating
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*model.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return review, nil
}

func (r *fakeReviewRepo) FindAll(ctx context.Context) ([]*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*model.Review
	for _, rv := range r.reviews {
		all = append(all, rv)
	}
	return all, nil
}

func (r *fakeReviewRepo) FindByCafe(ctx context.Context, cafeID uuid.UUID, offset, limit int) ([]*model.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.Review
	for _, rv := range r.reviews {
		if rv.CafeID == cafeID {
			matched = append(matched, rv)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) RatingsByCafe(ctx context.Context, cafeID uuid.UUID) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ratings []float64
	for _, rv := range r.reviews {
		if rv.CafeID == cafeID {
			ratings = append(ratings, rv.Rating)
		}
	}
	return ratings, nil
}

func (r *fakeReviewRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reviews []*model.Review
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			reviews = append(reviews, rv)
		}
	}
	return reviews, nil
}

func (r *fakeReviewRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rv := range r.reviews {
		if rv.UserID == userID {
			delete(r.reviews, id)
		}
	}
	return nil
}

// fakeImageStorage returns deterministic URLs and records deletions.
type fakeImageStorage struct {
	mu       sync.Mutex
	uploads  []string
	deletes  []string
	uploadNo int
}

func (s *fakeImageStorage) UploadImage(ctx context.Context, rd io.Reader, folder, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadNo++
	url := fmt.Sprintf("https://img.test/%s/%d-%s", folder, s.uploadNo, fileName)
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeImageStorage) DeleteImage(ctx context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, fileURL)
	return nil
}

// fakeSearchService records indexed and deleted document IDs.
type fakeSearchService struct {
	mu           sync.Mutex
	boardIndexed []string
	boardDeleted []string
	cafeIndexed  []string
}

func (s *fakeSearchService) IndexBoard(board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardIndexed = append(s.boardIndexed, board.ID.String())
	return nil
}

func (s *fakeSearchService) DeleteBoard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardDeleted = append(s.boardDeleted, id)
	return nil
}

func (s *fakeSearchService) IndexCafe(cafe *model.Cafe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cafeIndexed = append(s.cafeIndexed, cafe.ID.String())
	return nil
}
