package cache

import (
	"errors"

	"github.com/nugw/ai-gallery/cache/types"
)

// Provider re-exports the cache provider abstraction.
type Provider = types.Provider

// ErrCacheMiss 缓存未命中错误
var ErrCacheMiss = types.ErrCacheMiss

// IsCacheMiss 判断是否为缓存未命中错误
func IsCacheMiss(err error) bool {
	return errors.Is(err, types.ErrCacheMiss)
}
