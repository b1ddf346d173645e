package dto

import "github.com/j-h-711/MongMongVillage-BE/internal/model"

const (
	// CafesPerPage is the listing page size.
	CafesPerPage = 10
	// TopRatedCafesLimit is the home-page "top rated" slot count.
	TopRatedCafesLimit = 4
	// Top100CafesLimit bounds the ranking endpoint.
	Top100CafesLimit = 100
)

type CreateCafeRequest struct {
	Name          string  `form:"name" binding:"required,max=100"`
	RoadAddr      string  `form:"road_addr" binding:"required,max=255"`
	RegionAddr    string  `form:"region_addr" binding:"required,max=255"`
	ZipCode       string  `form:"zip_code" binding:"required,max=20"`
	Intro         *string `form:"intro"`
	Menu          *string `form:"menu"`
	OperatingTime *string `form:"operating_time"`
	PhoneNumber   string  `form:"phone_number" binding:"max=30"`
	Latitude      float64 `form:"latitude"`
	Longitude     float64 `form:"longitude"`
}

type UpdateCafeRequest struct {
	Name          *string  `form:"name" binding:"omitempty,max=100"`
	RoadAddr      *string  `form:"road_addr" binding:"omitempty,max=255"`
	RegionAddr    *string  `form:"region_addr" binding:"omitempty,max=255"`
	ZipCode       *string  `form:"zip_code" binding:"omitempty,max=20"`
	Intro         *string  `form:"intro"`
	Menu          *string  `form:"menu"`
	OperatingTime *string  `form:"operating_time"`
	PhoneNumber   *string  `form:"phone_number" binding:"omitempty,max=30"`
	Latitude      *float64 `form:"latitude"`
	Longitude     *float64 `form:"longitude"`
}

// ImportCafesRequest is the admin batch-import payload.
type ImportCafesRequest struct {
	Cafes []CreateCafeRequest `json:"cafes" binding:"required,min=1,dive"`
}

type CafeListResponse struct {
	Cafes []*model.Cafe  `json:"cafes"`
	Meta  PaginationMeta `json:"meta"`
}

type CafeDetailResponse struct {
	Cafe                 *model.Cafe     `json:"cafe"`
	Reviews              []*model.Review `json:"reviews"`
	TotalNumberOfReviews int64           `json:"total_number_of_reviews"`
}
