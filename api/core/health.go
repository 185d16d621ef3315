package core

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/cache"
	"github.com/nugw/ai-gallery/config"
	"github.com/nugw/ai-gallery/database"
)

func checkDatabaseHealth(factory *database.Factory) string {
	if factory == nil {
		return "not initialized"
	}
	if err := factory.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func checkCacheHealth(provider cache.Provider) string {
	if provider == nil {
		return "not initialized"
	}
	return "ok"
}

func healthHandler(deps *ServerDependencies) gin.HandlerFunc {
	return func(context *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks": gin.H{
				"database": checkDatabaseHealth(deps.DBFactory),
				"cache":    checkCacheHealth(deps.CacheProvider),
			},
		}
		httpStatus := http.StatusOK
		for _, checkResult := range health["checks"].(gin.H) {
			if result, ok := checkResult.(string); ok && result != "ok" {
				health["status"] = "degraded"
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}
		context.JSON(httpStatus, health)
	}
}
