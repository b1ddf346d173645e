package dto

import (
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

type UserCommentsResponse struct {
	User     AuthorResponse   `json:"user"`
	Comments []*model.Comment `json:"comments"`
}
