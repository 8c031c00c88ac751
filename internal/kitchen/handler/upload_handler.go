package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// UploadHandler 图片上传处理器
type UploadHandler struct {
	svc *service.UploadService
}

// NewUploadHandler 创建图片上传处理器
func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload POST /upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "no file uploaded: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.svc.Upload(c.Request.Context(), file, fileHeader.Filename, fileHeader.Size, contentType)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, result)
}
