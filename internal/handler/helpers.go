package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/pkg/response"
	"github.com/j-h-711/MongMongVillage-BE/pkg/validator"
)

// parseID reads a UUID path parameter. On failure it writes the 400
// envelope itself and reports false.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Envelope{
			Status:  http.StatusBadRequest,
			Message: "invalid id",
		})
		return uuid.Nil, false
	}
	return id, true
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Envelope{
		Status:  http.StatusBadRequest,
		Message: validator.FormatValidationError(err),
	})
}

// formImages opens every uploaded file under the multipart field and
// hands back readers plus a cleanup func the handler must defer.
func formImages(c *gin.Context, field string) ([]dto.ImageFile, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Non-multipart requests are fine, they just carry no images.
		return nil, func() {}, nil
	}

	headers := form.File[field]
	images := make([]dto.ImageFile, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))

	cleanup := func() {
		for _, cl := range closers {
			cl.Close()
		}
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, file)
		images = append(images, dto.ImageFile{Reader: file, FileName: header.Filename})
	}

	return images, cleanup, nil
}
