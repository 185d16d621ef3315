package images

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/utils/validator"
	"go.uber.org/zap"
)

type updateImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func captionError(err error) string {
	if errors.Is(err, validator.ErrTooLong) {
		return "Image caption must be less than 100 characters."
	}
	return "Image caption is required."
}

// UpdateImageHandler 修改图片描述
func (h *Handler) UpdateImageHandler(c *gin.Context) {
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

	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Image caption is required.")
		return
	}

	prompt, err := validator.NormalizeText(req.Prompt)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, captionError(err))
		return
	}

	updated, err := h.store(c).SetImageCaption(albumID, imageID, prompt)
	if err != nil {
		h.log.Error("failed to update image", zap.Error(err), zap.Uint("image_id", imageID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to update image")
		return
	}
	if !updated {
		common.RespondError(c, http.StatusNotFound, "Image not found")
		return
	}

	common.RespondSuccessMessage(c, "The image was successfully updated.", gin.H{
		"id":     imageID,
		"prompt": prompt,
	})
}
