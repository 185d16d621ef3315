package images

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/utils"
	"github.com/nugw/ai-gallery/utils/validator"
	"go.uber.org/zap"
)

type generateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerateImageResponse 生成图片响应
type GenerateImageResponse struct {
	Prompt string `json:"prompt"`
	URL    string `json:"url"`
	Token  string `json:"token"`
}

func promptError(err error) string {
	if errors.Is(err, validator.ErrTooLong) {
		return "Prompt must be less than 100 characters long."
	}
	return "A prompt is required to generate an image."
}

// GenerateHandler 调用生成服务产出图片，结果暂存待保存
func (h *Handler) GenerateHandler(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "A prompt is required to generate an image.")
		return
	}

	prompt, err := validator.NormalizeText(req.Prompt)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, promptError(err))
		return
	}

	url, err := h.client.Generate(c.Request.Context(), prompt)
	if err != nil {
		h.log.Error("image generation failed",
			zap.String("prompt", utils.SanitizeLogMessage(prompt)),
			zap.Error(err))
		common.RespondError(c, http.StatusBadGateway, "Image generation failed. Please try again.")
		return
	}

	pending, err := h.clipboard.Put(c.Request.Context(), h.username(c), prompt, url)
	if err != nil {
		h.log.Error("failed to stash generated image", zap.Error(err))
		common.RespondError(c, http.StatusInternalServerError, "Image generation failed. Please try again.")
		return
	}

	common.RespondSuccess(c, GenerateImageResponse{
		Prompt: pending.Prompt,
		URL:    pending.URL,
		Token:  pending.Token,
	})
}
