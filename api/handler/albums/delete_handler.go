package albums

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"go.uber.org/zap"
)

// DeleteAlbumHandler 删除相册及其全部图片
func (h *Handler) DeleteAlbumHandler(c *gin.Context) {
	albumID, ok := parseAlbumID(c)
	if !ok {
		common.RespondError(c, http.StatusBadRequest, "Invalid album ID format")
		return
	}

	store := h.store(c)

	album, err := store.LoadAlbum(albumID)
	if err != nil {
		h.log.Error("failed to load album", zap.Error(err), zap.Uint("album_id", albumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete album")
		return
	}
	if album == nil {
		common.RespondError(c, http.StatusNotFound, "Album not found")
		return
	}

	deleted, err := store.DeleteAlbum(albumID)
	if err != nil {
		h.log.Error("failed to delete album", zap.Error(err), zap.Uint("album_id", albumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete album")
		return
	}
	if !deleted {
		common.RespondError(c, http.StatusNotFound, "Album not found")
		return
	}

	h.log.Info("album deleted",
		zap.Uint("album_id", albumID),
		zap.Int("image_count", len(album.Images)))
	common.RespondSuccessMessage(c, fmt.Sprintf("Album %q was successfully deleted.", album.Name), nil)
}
