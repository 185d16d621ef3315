package cache

import (
	"fmt"

	"github.com/nugw/ai-gallery/cache/memory"
	"github.com/nugw/ai-gallery/cache/redis"
	"github.com/nugw/ai-gallery/config"
)

// NewProvider 根据配置创建缓存提供者
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.CacheType {
	case "memory", "":
		return memory.NewMemory(memory.Config{
			NumCounters: 100000,
			MaxCost:     64 << 20, // 64MB
			BufferItems: 64,
		})
	case "redis":
		provider, err := redis.NewRedis(cfg.CacheRedisAddr, cfg.CacheRedisPassword, cfg.CacheRedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
