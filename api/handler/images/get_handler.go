package images

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/database/models"
	"go.uber.org/zap"
)

// ImageDTO 图片响应数据
type ImageDTO struct {
	ID        uint   `json:"id"`
	Prompt    string `json:"prompt"`
	URL       string `json:"url"`
	AlbumID   uint   `json:"album_id"`
	CreatedAt int64  `json:"created_at"`
}

func toImageDTO(image *models.Image) *ImageDTO {
	return &ImageDTO{
		ID:        image.ID,
		Prompt:    image.Prompt,
		URL:       image.URL,
		AlbumID:   image.AlbumID,
		CreatedAt: image.CreatedAt.Unix(),
	}
}

// GetImageHandler 获取单张图片
func (h *Handler) GetImageHandler(c *gin.Context) {
	albumID, ok := parseID(c, "id")
	if !ok {
		common.RespondError(c, http.StatusBadRequest, "Invalid album ID format")
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		common.RespondError(c, http.StatusBadRequest, "Invalid image ID format")
		return
	}

	image, err := h.store(c).LoadImage(albumID, imageID)
	if err != nil {
		h.log.Error("failed to load image", zap.Error(err), zap.Uint("image_id", imageID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to get image")
		return
	}
	if image == nil {
		common.RespondError(c, http.StatusNotFound, "Image not found")
		return
	}

	common.RespondSuccess(c, toImageDTO(image))
}
