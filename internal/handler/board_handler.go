package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/service"
	"github.com/j-h-711/MongMongVillage-BE/pkg/response"
)

type BoardHandler struct {
	boardService service.BoardService
	likeService  service.LikeService
}

func NewBoardHandler(boardService service.BoardService, likeService service.LikeService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		likeService:  likeService,
	}
}

func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateBoardRequest
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

	board, err := h.boardService.CreateBoard(c.Request.Context(), userID, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "board created", board)
}

func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	boardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
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

	board, err := h.boardService.UpdateBoard(c.Request.Context(), userID, boardID, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "board updated", board)
}

func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	boardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), userID, boardID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "board deleted", nil)
}

func (h *BoardHandler) GetBoards(c *gin.Context) {
	page := dto.NewPagination(c.Query("currentPage"), dto.BoardsPerPage)

	boards, err := h.boardService.GetBoards(c.Request.Context(), c.DefaultQuery("sortBy", dto.SortLatest), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "boards retrieved", boards)
}

func (h *BoardHandler) GetCategoryBoards(c *gin.Context) {
	page := dto.NewPagination(c.Query("currentPage"), dto.BoardsPerPage)

	boards, err := h.boardService.GetCategoryBoards(c.Request.Context(), c.Param("name"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "boards retrieved", boards)
}

func (h *BoardHandler) GetBestBoards(c *gin.Context) {
	boards, err := h.boardService.GetBestBoards(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "best boards retrieved", boards)
}

func (h *BoardHandler) SearchBoards(c *gin.Context) {
	page := dto.NewPagination(c.Query("currentPage"), dto.BoardsPerPage)

	boards, err := h.boardService.SearchBoards(c.Request.Context(), c.Query("content"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "boards retrieved", boards)
}

func (h *BoardHandler) GetBoardDetail(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.boardService.GetBoardDetail(c.Request.Context(), boardID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "board retrieved", detail)
}

func (h *BoardHandler) ToggleLike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	boardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.likeService.ToggleLike(c.Request.Context(), userID, boardID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "like removed"
	if result.IsLiked {
		message = "like added"
	}

	response.OK(c, http.StatusOK, message, result)
}

func (h *BoardHandler) GetLikedStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	boardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	liked, err := h.likeService.IsLiked(c.Request.Context(), userID, boardID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "like status retrieved", dto.LikedStatusResponse{Checked: liked})
}

func (h *BoardHandler) GetMyBoards(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	boards, err := h.boardService.GetUserBoards(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "boards retrieved", boards)
}

func (h *BoardHandler) GetMyLikedBoards(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	boards, err := h.boardService.GetLikedBoards(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "liked boards retrieved", boards)
}
