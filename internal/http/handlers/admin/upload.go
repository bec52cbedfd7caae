package admin

import (
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"

	"github.com/gin-gonic/gin"
)

// UploadFile stores an image under the scene folder and returns its public url
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", nil)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondServiceError(c, err, "upload failed")
		return
	}

	logger.Infow("admin_upload_saved",
		"admin_id", currentAdminID(c),
		"scene", scene,
		"filename", file.Filename,
		"size", file.Size,
	)
	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
