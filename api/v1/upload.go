package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/storage"
	"github.com/estatehub-api/services"
	"github.com/estatehub-api/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageTypes maps accepted sniffed content types to file extensions
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DefaultUploadFolder is used when the form names no folder
const DefaultUploadFolder = "misc"

// UploadController stores images in the storage provider
type UploadController struct {
	provider storage.Provider
	maxBytes int64
}

// NewUploadController creates a new upload controller accepting files up
// to maxBytes
func NewUploadController(provider storage.Provider, maxBytes int64) *UploadController {
	return &UploadController{provider: provider, maxBytes: maxBytes}
}

// RegisterRoutes registers upload routes
func (ctl *UploadController) RegisterRoutes(admin *gin.RouterGroup) {
	uploads := admin.Group("/uploads")
	{
		uploads.POST("", ctl.Upload)
		uploads.DELETE("", ctl.Delete)
	}
}

type deleteUploadRequest struct {
	URL string `json:"url" binding:"required"`
}

// Upload stores the multipart "file" under the optional "folder"
func (ctl *UploadController) Upload(c *gin.Context) {
	// leave room for the multipart framing around the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctl.maxBytes+64*1024)

	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "a file is required", "file")
		return
	}
	if header.Size > ctl.maxBytes {
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed,
			fmt.Sprintf("file exceeds %d bytes", ctl.maxBytes), "file")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer file.Close()

	mime, err := mimetype.DetectReader(file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ext, ok := allowedImageTypes[mime.String()]
	if !ok {
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed,
			fmt.Sprintf("unsupported file type %s", mime.String()), "file")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondServiceError(c, err)
		return
	}

	folder := services.Slugify(c.PostForm("folder"))
	if folder == "" {
		folder = DefaultUploadFolder
	}
	key := folder + "/" + uuid.NewString() + ext

	url, err := ctl.provider.Put(c.Request.Context(), key, file, mime.String())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Logger.WithField("key", key).Info("Image uploaded")
	respondOK(c, http.StatusCreated, gin.H{
		"url":         url,
		"contentType": mime.String(),
		"size":        header.Size,
	})
}

// Delete removes a previously uploaded object
func (ctl *UploadController) Delete(c *gin.Context) {
	var req deleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := ctl.provider.Delete(c.Request.Context(), req.URL); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"url": req.URL})
}
