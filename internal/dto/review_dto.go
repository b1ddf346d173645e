package dto

// ReviewsPerPage is the page size on the cafe detail endpoint.
const ReviewsPerPage = 5

type CreateReviewRequest struct {
	Title   string  `form:"title" binding:"required,max=255"`
	Rating  float64 `form:"rating" binding:"required,min=1,max=5"`
	Content string  `form:"content" binding:"required"`
}

type UpdateReviewRequest struct {
	Title   *string  `form:"title" binding:"omitempty,max=255"`
	Rating  *float64 `form:"rating" binding:"omitempty,min=1,max=5"`
	Content *string  `form:"content"`
}
