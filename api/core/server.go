package core

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api"
	"github.com/nugw/ai-gallery/api/common"
	handlerAlbums "github.com/nugw/ai-gallery/api/handler/albums"
	handlerImages "github.com/nugw/ai-gallery/api/handler/images"
	"github.com/nugw/ai-gallery/api/middleware"
	"github.com/nugw/ai-gallery/cache"
	"github.com/nugw/ai-gallery/config"
	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/internal/auth"
	"github.com/nugw/ai-gallery/internal/generate"
	"go.uber.org/zap"
)

var startTime = time.Now()

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	DBFactory     *database.Factory
	CacheProvider cache.Provider
	JWTService    *auth.JWTService
	LoginService  *auth.LoginService
	Generator     *generate.Client
	Clipboard     *generate.Clipboard
	Logger        *zap.Logger
}

// 启动gin
func setupRouter(deps *ServerDependencies) *gin.Engine {
	cfg := config.Get()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 速率限制
	authRateLimiter := middleware.NewPerClientRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst)
	apiRateLimiter := middleware.NewPerClientRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst)

	router.GET("/health", healthHandler(deps))
	router.GET("/version", func(context *gin.Context) {
		common.RespondSuccess(context, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	// 创建处理器（依赖注入）
	loginHandler := api.NewLoginHandler(deps.LoginService, deps.Logger)
	albumHandler := handlerAlbums.NewHandler(deps.DBFactory.GetProvider(), deps.Logger)
	imageHandler := handlerImages.NewHandler(deps.DBFactory.GetProvider(), deps.Generator, deps.Clipboard, deps.Logger)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(context *gin.Context) { // 所有API禁止缓存
		context.Header("Cache-Control", "no-store")
		context.Next()
	})
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(authRateLimiter.Middleware())
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc)   //POST /api/auth/login
			authGroup.POST("/logout", loginHandler.LogoutHandlerFunc) //POST /api/auth/logout
		}

		v1 := apiGroup.Group("/v1")
		v1.Use(apiRateLimiter.Middleware())
		v1.Use(middleware.RequireAuth(deps.JWTService))
		{
			v1.POST("/generate", imageHandler.GenerateHandler)   // POST /api/v1/generate
			v1.POST("/images/save", imageHandler.SaveHandler)    // POST /api/v1/images/save

			albumsGroup := v1.Group("/albums")
			{
				albumsGroup.GET("", albumHandler.ListAlbumsHandler)         // GET /api/v1/albums
				albumsGroup.POST("", albumHandler.CreateAlbumHandler)       // POST /api/v1/albums
				albumsGroup.GET("/:id", albumHandler.AlbumDetailHandler)    // GET /api/v1/albums/{id}
				albumsGroup.PUT("/:id", albumHandler.UpdateAlbumHandler)    // PUT /api/v1/albums/{id}
				albumsGroup.DELETE("/:id", albumHandler.DeleteAlbumHandler) // DELETE /api/v1/albums/{id}

				// 相册图片管理
				albumsGroup.GET("/:id/images/:imageId", imageHandler.GetImageHandler)       // GET /api/v1/albums/{id}/images/{imageId}
				albumsGroup.PUT("/:id/images/:imageId", imageHandler.UpdateImageHandler)    // PUT /api/v1/albums/{id}/images/{imageId}
				albumsGroup.DELETE("/:id/images/:imageId", imageHandler.DeleteImageHandler) // DELETE /api/v1/albums/{id}/images/{imageId}
			}
		}
	}

	return router
}

// StartServer 创建 http.Server
func StartServer(deps *ServerDependencies) *http.Server {
	cfg := config.Get()
	router := setupRouter(deps)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
}
