package albums

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/utils/validator"
	"go.uber.org/zap"
)

type createAlbumRequest struct {
	Name string `json:"name" binding:"required"`
}

func albumNameError(err error) string {
	if errors.Is(err, validator.ErrTooLong) {
		return "Album name must be less than 100 characters."
	}
	return "Album name is required."
}

// CreateAlbumHandler 创建相册
func (h *Handler) CreateAlbumHandler(c *gin.Context) {
	var req createAlbumRequest
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

	// 预检查给出友好提示；约束冲突仍然兜底
	exists, err := store.ExistsAlbumName(name)
	if err != nil {
		h.log.Error("failed to check album name", zap.Error(err))
		common.RespondError(c, http.StatusInternalServerError, "Failed to create album")
		return
	}
	if exists {
		common.RespondError(c, http.StatusConflict, "Album name must be unique.")
		return
	}

	created, err := store.CreateAlbum(name)
	if err != nil {
		h.log.Error("failed to create album", zap.Error(err))
		common.RespondError(c, http.StatusInternalServerError, "Failed to create album")
		return
	}
	if !created {
		common.RespondError(c, http.StatusConflict, "Album name must be unique.")
		return
	}

	common.RespondSuccessMessage(c, fmt.Sprintf("Album %q was successfully created!", name), gin.H{
		"name": name,
	})
}
