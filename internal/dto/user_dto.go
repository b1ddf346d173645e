package dto

type UpdateUserRequest struct {
	Nickname     *string `form:"nickname" binding:"omitempty,min=2,max=50"`
	Introduction *string `form:"introduction" binding:"omitempty,max=500"`
}
