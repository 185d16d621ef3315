package albums

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/database/models"
	"go.uber.org/zap"
)

// AlbumDTO 相册响应数据
type AlbumDTO struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ImageCount int    `json:"image_count"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

// ListAlbumsResponse 相册列表响应
type ListAlbumsResponse struct {
	Albums    []*AlbumDTO `json:"albums"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
}

// parsePage reads an optional ?page= query. Anything that is not a positive
// integer is treated the same as a page beyond the last one.
func parsePage(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// ListAlbumsHandler 获取相册列表，按图片数量倒序、名称不区分大小写正序
func (h *Handler) ListAlbumsHandler(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		common.RespondError(c, http.StatusNotFound, "Page not found")
		return
	}

	store := h.store(c)

	pageCount, err := store.CountAlbumPages()
	if err != nil {
		h.log.Error("failed to count album pages", zap.Error(err))
		common.RespondError(c, http.StatusInternalServerError, "Failed to get albums")
		return
	}
	if page > pageCount {
		common.RespondError(c, http.StatusNotFound, "Page not found")
		return
	}

	albums, err := store.SortedAlbums(page)
	if err != nil {
		h.log.Error("failed to list albums", zap.Error(err))
		common.RespondError(c, http.StatusInternalServerError, "Failed to get albums")
		return
	}

	albumDTOs := make([]*AlbumDTO, len(albums))
	for i, album := range albums {
		albumDTOs[i] = toAlbumDTO(album)
	}

	common.RespondSuccess(c, ListAlbumsResponse{
		Albums:    albumDTOs,
		Page:      page,
		PageCount: pageCount,
	})
}

func toAlbumDTO(album *models.Album) *AlbumDTO {
	return &AlbumDTO{
		ID:         album.ID,
		Name:       album.Name,
		ImageCount: len(album.Images),
		CreatedAt:  album.CreatedAt.Unix(),
		UpdatedAt:  album.UpdatedAt.Unix(),
	}
}
