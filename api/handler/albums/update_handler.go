package albums

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/utils/validator"
	"go.uber.org/zap"
)

type updateAlbumRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateAlbumHandler 重命名相册
func (h *Handler) UpdateAlbumHandler(c *gin.Context) {
	albumID, ok := parseAlbumID(c)
	if !ok {
		common.RespondError(c, http.StatusBadRequest, "Invalid album ID format")
		return
	}

	var req updateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Album name is required.")
		return
	}

	name, err := validator.NormalizeText(req.Name)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, albumNameError(err))
		return
	}

	store := h.store(c)

	album, err := store.LoadAlbum(albumID)
	if err != nil {
		h.log.Error("failed to load album", zap.Error(err), zap.Uint("album_id", albumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to update album")
		return
	}
	if album == nil {
		common.RespondError(c, http.StatusNotFound, "Album not found")
		return
	}
	if album.Name == name {
		common.RespondSuccessMessage(c, fmt.Sprintf("Album %q was successfully updated.", name), gin.H{
			"id":   albumID,
			"name": name,
		})
		return
	}

	exists, err := store.ExistsAlbumName(name)
	if err != nil {
		h.log.Error("failed to check album name", zap.Error(err))
		common.RespondError(c, http.StatusInternalServerError, "Failed to update album")
		return
	}
	if exists {
		common.RespondError(c, http.StatusConflict, "Album name must be unique.")
		return
	}

	updated, err := store.SetAlbumName(albumID, name)
	if err != nil {
		h.log.Error("failed to rename album", zap.Error(err), zap.Uint("album_id", albumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to update album")
		return
	}
	if !updated {
		common.RespondError(c, http.StatusConflict, "Album name must be unique.")
		return
	}

	common.RespondSuccessMessage(c, fmt.Sprintf("Album %q was successfully updated.", name), gin.H{
		"id":   albumID,
		"name": name,
	})
}
