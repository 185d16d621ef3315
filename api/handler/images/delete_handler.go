package images

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"go.uber.org/zap"
)

// DeleteImageHandler 删除图片
func (h *Handler) DeleteImageHandler(c *gin.Context) {
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

	store := h.store(c)

	image, err := store.LoadImage(albumID, imageID)
	if err != nil {
		h.log.Error("failed to load image", zap.Error(err), zap.Uint("image_id", imageID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	if image == nil {
		common.RespondError(c, http.StatusNotFound, "Image not found")
		return
	}

	deleted, err := store.DeleteImage(albumID, imageID)
	if err != nil {
		h.log.Error("failed to delete image", zap.Error(err), zap.Uint("image_id", imageID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	if !deleted {
		common.RespondError(c, http.StatusNotFound, "Image not found")
		return
	}

	common.RespondSuccessMessage(c, fmt.Sprintf("%q was successfully deleted!", image.Prompt), nil)
}
