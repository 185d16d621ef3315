package albums

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/database/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ImageDTO 图片响应数据
type ImageDTO struct {
	ID        uint   `json:"id"`
	Prompt    string `json:"prompt"`
	URL       string `json:"url"`
	AlbumID   uint   `json:"album_id"`
	CreatedAt int64  `json:"created_at"`
}

// AlbumDetailResponse 相册详情响应
type AlbumDetailResponse struct {
	Album     *AlbumDTO   `json:"album"`
	Images    []*ImageDTO `json:"images"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
}

func parseAlbumID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// AlbumDetailHandler 获取相册详情及其分页图片
func (h *Handler) AlbumDetailHandler(c *gin.Context) {
	albumID, ok := parseAlbumID(c)
	if !ok {
		common.RespondError(c, http.StatusBadRequest, "Invalid album ID format")
		return
	}
	page, ok := parsePage(c)
	if !ok {
		common.RespondError(c, http.StatusNotFound, "Page not found")
		return
	}

	store := h.store(c)

	pageCount, err := store.CountImagePages(albumID)
	if err != nil {
		h.log.Error("failed to count image pages", zap.Error(err), zap.Uint("album_id", albumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to get album")
		return
	}
	if page > pageCount {
		common.RespondError(c, http.StatusNotFound, "Page not found")
		return
	}

	var (
		album  *models.Album
		images []*models.Image
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		album, err = store.LoadAlbum(albumID)
		return err
	})
	g.Go(func() error {
		var err error
		images, err = store.SortedImages(albumID, page)
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error("failed to load album", zap.Error(err), zap.Uint("album_id", albumID))
		common.RespondError(c, http.StatusInternalServerError, "Failed to get album")
		return
	}
	if album == nil {
		common.RespondError(c, http.StatusNotFound, "Album not found")
		return
	}

	imageDTOs := make([]*ImageDTO, len(images))
	for i, image := range images {
		imageDTOs[i] = toImageDTO(image)
	}

	common.RespondSuccess(c, AlbumDetailResponse{
		Album:     toAlbumDTO(album),
		Images:    imageDTOs,
		Page:      page,
		PageCount: pageCount,
	})
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
