package service

import (
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

// SearchService mirrors board and cafe documents into Meilisearch so
// frontend clients can search them directly. Indexing is best-effort:
// callers log failures, the store stays the source of truth.
type SearchService interface {
	IndexBoard(board *model.Board) error
	DeleteBoard(id string) error
	IndexCafe(cafe *model.Cafe) error
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	boardSortable := []string{"created_at", "like_count"}
	if _, err := s.client.Index("boards").UpdateSortableAttributes(&boardSortable); err != nil {
		log.Printf("Failed to update boards sortable attributes: %v", err)
	}

	boardFilterable := []string{"category", "animal_type"}
	boardFilterableAny := make([]any, len(boardFilterable))
	for i, v := range boardFilterable {
		boardFilterableAny[i] = v
	}
	if _, err := s.client.Index("boards").UpdateFilterableAttributes(&boardFilterableAny); err != nil {
		log.Printf("Failed to update boards filterable attributes: %v", err)
	}

	cafeSortable := []string{"created_at", "rating"}
	if _, err := s.client.Index("cafes").UpdateSortableAttributes(&cafeSortable); err != nil {
		log.Printf("Failed to update cafes sortable attributes: %v", err)
	}
}

type meiliBoardDoc struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	AnimalType string `json:"animal_type"`
	LikeCount  int    `json:"like_count"`
	Nickname   string `json:"nickname"`
	CreatedAt  int64  `json:"created_at"`
}

type meiliCafeDoc struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	RoadAddr   string  `json:"road_addr"`
	RegionAddr string  `json:"region_addr"`
	Rating     float64 `json:"rating"`
	CreatedAt  int64   `json:"created_at"`
}

func (s *meiliSearchService) cleanContentForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexBoard(board *model.Board) error {
	doc := meiliBoardDoc{
		ID:         board.ID.String(),
		Title:      board.Title,
		Content:    s.cleanContentForIndex(board.Content),
		Category:   board.Category,
		AnimalType: board.AnimalType,
		LikeCount:  board.LikeCount,
		Nickname:   board.User.Nickname,
		CreatedAt:  board.CreatedAt.Unix(),
	}

	_, err := s.client.Index("boards").AddDocuments([]meiliBoardDoc{doc}, strPtr("id"))
	return err
}

func (s *meiliSearchService) DeleteBoard(id string) error {
	_, err := s.client.Index("boards").DeleteDocument(id)
	return err
}

func (s *meiliSearchService) IndexCafe(cafe *model.Cafe) error {
	doc := meiliCafeDoc{
		ID:         cafe.ID.String(),
		Name:       cafe.Name,
		RoadAddr:   cafe.RoadAddr,
		RegionAddr: cafe.RegionAddr,
		Rating:     cafe.Rating,
		CreatedAt:  cafe.CreatedAt.Unix(),
	}

	_, err := s.client.Index("cafes").AddDocuments([]meiliCafeDoc{doc}, strPtr("id"))
	return err
}

func strPtr(s string) *string {
	return &s
}
