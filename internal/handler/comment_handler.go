package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/service"
	"github.com/j-h-711/MongMongVillage-BE/pkg/response"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	boardID, ok := parseID(c, "boardId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, boardID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "comment created", comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	boardID, ok := parseID(c, "boardId")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), userID, boardID, commentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "comment updated", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	boardID, ok := parseID(c, "boardId")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), userID, boardID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "comment deleted", nil)
}

func (h *CommentHandler) GetMyComments(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := h.commentService.GetUserComments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "comments retrieved", comments)
}
