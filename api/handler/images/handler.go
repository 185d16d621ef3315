package images

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/middleware"
	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/repo/gallery"
	"github.com/nugw/ai-gallery/internal/generate"
	"go.uber.org/zap"
)

// Handler 图片处理器
type Handler struct {
	db        database.Provider
	client    *generate.Client
	clipboard *generate.Clipboard
	log       *zap.Logger
}

// NewHandler 创建新的图片处理器
func NewHandler(db database.Provider, client *generate.Client, clipboard *generate.Clipboard, log *zap.Logger) *Handler {
	return &Handler{db: db, client: client, clipboard: clipboard, log: log}
}

func (h *Handler) username(c *gin.Context) string {
	return c.GetString(middleware.ContextUsernameKey)
}

func (h *Handler) store(c *gin.Context) *gallery.Store {
	return gallery.New(h.db, h.username(c)).WithContext(c.Request.Context())
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
