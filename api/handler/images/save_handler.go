package images

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/database/models"
	"go.uber.org/zap"
)

type saveImageRequest struct {
	AlbumID uint   `json:"album_id" binding:"required"`
	Token   string `json:"token" binding:"required"`
}

// SaveImageResponse 保存图片响应
type SaveImageResponse struct {
	ImageID uint `json:"image_id"`
	AlbumID uint `json:"album_id"`
}

// SaveHandler 把剪贴板里的生成结果存入相册
func (h *Handler) SaveHandler(c *gin.Context) {
	var req saveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "An album and an image token are required.")
		return
	}

	ctx := c.Request.Context()
	username := h.username(c)

	pending, err := h.clipboard.Get(ctx, username)
	if err != nil {
		h.log.Error("failed to read pending image", zap.Error(err))
		common.RespondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}
	if pending == nil || pending.Token != req.Token {
		// 剪贴板已过期或被新的生成结果覆盖
		common.RespondError(c, http.StatusGone, "No generated image to save. Please generate a new one.")
		return
	}

	store := h.store(c)

	album, err := store.LoadAlbum(req.AlbumID)
	if err != nil {
		h.log.Error("failed to load album", zap.Error(err), zap.Uint("album_id", req.AlbumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}
	if album == nil {
		common.RespondError(c, http.StatusNotFound, "Album not found")
		return
	}

	image := &models.Image{
		Prompt: pending.Prompt,
		URL:    pending.URL,
	}
	saved, err := store.AddImageToAlbum(req.AlbumID, image)
	if err != nil {
		h.log.Error("failed to save image", zap.Error(err), zap.Uint("album_id", req.AlbumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}
	if !saved {
		common.RespondError(c, http.StatusNotFound, "Album not found")
		return
	}

	if err := h.clipboard.Clear(ctx, username); err != nil {
		// 保存已成功，剪贴板残留只会在 TTL 内多活一会
		h.log.Warn("failed to clear pending image", zap.Error(err))
	}

	common.RespondSuccessMessage(c, fmt.Sprintf("Your image was added to %q.", album.Name), SaveImageResponse{
		ImageID: image.ID,
		AlbumID: req.AlbumID,
	})
}
