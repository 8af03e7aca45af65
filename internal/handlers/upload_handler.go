package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/davidobi-dev/threadcart-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// UploadImage accepts a multipart image and returns the hosted URL to put
// in a product's images list.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("file is required"))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("unsupported file type"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("failed to read file"))
		return
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(file, uuid.NewString())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("failed to upload image"))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("image uploaded successfully", gin.H{
		"url": url,
	}))
}
