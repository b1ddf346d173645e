package dto

import (
	"io"
	"strconv"
)

// Pagination computes offset-based pages. Pages are 1-based; an absent
// or non-numeric page parameter falls back to page 1.
type Pagination struct {
	CurrentPage int
	PerPage     int
}

// NewPagination parses the currentPage query value. Values below 1 and
// unparsable values collapse to page 1.
func NewPagination(currentPage string, perPage int) Pagination {
	page, err := strconv.Atoi(currentPage)
	if err != nil || page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	return Pagination{CurrentPage: page, PerPage: perPage}
}

func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

func (p Pagination) Limit() int {
	return p.PerPage
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	PerPage     int   `json:"per_page"`
}

// Meta builds the page metadata for a total item count.
func (p Pagination) Meta(total int64) PaginationMeta {
	totalPages := int(total) / p.PerPage
	if int(total)%p.PerPage != 0 {
		totalPages++
	}
	return PaginationMeta{
		CurrentPage: p.CurrentPage,
		TotalPages:  totalPages,
		TotalItems:  total,
		PerPage:     p.PerPage,
	}
}

// ImageFile is one multipart upload handed from handler to service.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

// AuthorResponse is the embedded author shape on boards, comments and
// reviews.
type AuthorResponse struct {
	ID             string  `json:"id"`
	Nickname       string  `json:"nickname"`
	ProfilePicture *string `json:"profile_picture"`
}
