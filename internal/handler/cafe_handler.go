package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/service"
	"github.com/j-h-711/MongMongVillage-BE/pkg/response"
)

type CafeHandler struct {
	cafeService service.CafeService
}

func NewCafeHandler(cafeService service.CafeService) *CafeHandler {
	return &CafeHandler{cafeService: cafeService}
}

func (h *CafeHandler) GetCafes(c *gin.Context) {
	page := dto.NewPagination(c.Query("currentPage"), dto.CafesPerPage)

	cafes, err := h.cafeService.GetCafes(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "cafes retrieved", cafes)
}

func (h *CafeHandler) GetTopRatedCafes(c *gin.Context) {
	cafes, err := h.cafeService.GetTopRatedCafes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "top rated cafes retrieved", cafes)
}

func (h *CafeHandler) GetTop100Cafes(c *gin.Context) {
	cafes, err := h.cafeService.GetTop100Cafes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "top 100 cafes retrieved", cafes)
}

func (h *CafeHandler) SearchCafes(c *gin.Context) {
	page := dto.NewPagination(c.Query("currentPage"), dto.CafesPerPage)

	cafes, err := h.cafeService.SearchCafes(c.Request.Context(), c.Query("name"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "cafes retrieved", cafes)
}

func (h *CafeHandler) GetCafeDetail(c *gin.Context) {
	cafeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	page := dto.NewPagination(c.Query("currentPage"), dto.ReviewsPerPage)

	detail, err := h.cafeService.GetCafeDetail(c.Request.Context(), cafeID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "cafe retrieved", detail)
}

func (h *CafeHandler) CreateCafe(c *gin.Context) {
	var req dto.CreateCafeRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	var image *dto.ImageFile
	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer file.Close()
		image = &dto.ImageFile{Reader: file, FileName: header.Filename}
	}

	cafe, err := h.cafeService.CreateCafe(c.Request.Context(), req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "cafe created", cafe)
}

func (h *CafeHandler) ImportCafes(c *gin.Context) {
	var req dto.ImportCafesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cafes, err := h.cafeService.ImportCafes(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "cafes imported", cafes)
}

func (h *CafeHandler) UpdateCafe(c *gin.Context) {
	cafeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCafeRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	var image *dto.ImageFile
	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer file.Close()
		image = &dto.ImageFile{Reader: file, FileName: header.Filename}
	}

	cafe, err := h.cafeService.UpdateCafe(c.Request.Context(), cafeID, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "cafe updated", cafe)
}
