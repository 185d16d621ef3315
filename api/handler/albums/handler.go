package albums

import (
	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/middleware"
	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/repo/gallery"
	"go.uber.org/zap"
)

// Handler 相册处理器
type Handler struct {
	db  database.Provider
	log *zap.Logger
}

// NewHandler 创建新的相册处理器
func NewHandler(db database.Provider, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

// store builds the per-request gallery store scoped to the signed-in user.
func (h *Handler) store(c *gin.Context) *gallery.Store {
	username := c.GetString(middleware.ContextUsernameKey)
	return gallery.New(h.db, username).WithContext(c.Request.Context())
}
