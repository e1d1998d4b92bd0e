package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/s3"
	"github.com/windoze95/saltybytes-planner/internal/util"
	"go.uber.org/zap"
)

// UploadFunc stores image bytes under key and returns their public URL.
type UploadFunc func(ctx context.Context, cfg *config.Config, img []byte, key, contentType string) (string, error)

// ImageHandler handles image upload requests.
type ImageHandler struct {
	Cfg    *config.Config
	Upload UploadFunc
}

// NewImageHandler creates a new ImageHandler backed by S3.
func NewImageHandler(cfg *config.Config) *ImageHandler {
	return &ImageHandler{Cfg: cfg, Upload: s3.UploadRecipeImage}
}

// allowedImageTypes maps accepted image file extensions to their content type.
var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// maxImageSize is the largest accepted image.
const maxImageSize = 10 << 20

// UploadImage handles POST /v1/images/upload. The returned URL fills the image field
// of the add-recipe form.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	clientID, err := util.GetClientIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	ext, contentType, ok := imageContentType(header.Filename)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type. Allowed: jpg, png, webp"})
		return
	}

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds maximum size of 10MB"})
		return
	}

	imgBytes, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	if len(imgBytes) > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds maximum size of 10MB"})
		return
	}

	imageURL, err := h.Upload(c.Request.Context(), h.Cfg, imgBytes, s3.GenerateS3Key(clientID, ext), contentType)
	if err != nil {
		logger.FromContext(c).Error("failed to upload image to S3", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
