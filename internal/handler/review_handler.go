package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/service"
	"github.com/j-h-711/MongMongVillage-BE/pkg/response"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	cafeID, ok := parseID(c, "cafeId")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	images, cleanup, err := formImages(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, cafeID, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "review created", review)
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "reviews retrieved", reviews)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "review retrieved", review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	images, cleanup, err := formImages(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	review, err := h.reviewService.UpdateReview(c.Request.Context(), userID, reviewID, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "review updated", review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, reviewID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "review deleted", nil)
}
