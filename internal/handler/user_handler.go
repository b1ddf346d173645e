package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/service"
	"github.com/j-h-711/MongMongVillage-BE/pkg/response"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), callerID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "user retrieved", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	var image io.Reader
	imageName := ""
	if header, err := c.FormFile("profile_picture"); err == nil {
		file, err := header.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer file.Close()
		image = file
		imageName = header.Filename
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), callerID, userID, req, image, imageName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "user updated", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), callerID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "user deleted", nil)
}
