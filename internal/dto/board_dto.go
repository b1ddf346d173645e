package dto

import (
	"github.com/google/uuid"

	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

const (
	// BoardsPerPage is the community feed page size.
	BoardsPerPage = 4
	// BestBoardsLimit is the home-page "best" slot count.
	BestBoardsLimit = 4
)

const (
	SortLatest = "latest"
	SortLikes  = "likes"
)

type CreateBoardRequest struct {
	Title      string `form:"title" binding:"required,max=255"`
	Content    string `form:"content" binding:"required"`
	Category   string `form:"category" binding:"required,oneof=info general question"`
	AnimalType string `form:"animalType" binding:"max=50"`
}

type UpdateBoardRequest struct {
	Title      string `form:"title" binding:"required,max=255"`
	Content    string `form:"content" binding:"required"`
	Category   string `form:"category" binding:"required,oneof=info general question"`
	AnimalType string `form:"animalType" binding:"max=50"`
}

type BoardListResponse struct {
	Boards []*model.Board `json:"boards"`
	Meta   PaginationMeta `json:"meta"`
}

type BoardDetailResponse struct {
	Board    *model.Board     `json:"board"`
	Comments []*model.Comment `json:"comments"`
}

type LikeToggleResponse struct {
	BoardID   uuid.UUID `json:"board_id"`
	IsLiked   bool      `json:"is_liked"`
	LikeCount int       `json:"like_count"`
}

type LikedStatusResponse struct {
	Checked bool `json:"checked"`
}
