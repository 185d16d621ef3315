package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"golang.org/x/time/rate"
)

// SimpleRateLimiter 全局限流器
type SimpleRateLimiter struct {
	limiter *rate.Limiter
}

// NewSimpleRateLimiter 创建简单限流器
// rps: 每秒请求数; burst: 突发请求数
func NewSimpleRateLimiter(rps float64, burst int) *SimpleRateLimiter {
	return &SimpleRateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Middleware 返回 Gin 中间件
func (rl *SimpleRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Allow() {
			common.RespondErrorAbort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}

// PerClientRateLimiter 每个客户端 IP 独立的限流器
type PerClientRateLimiter struct {
	rps     rate.Limit
	burst   int
	clients map[string]*rate.Limiter
	mu      sync.RWMutex
}

// NewPerClientRateLimiter 创建每客户端限流器
func NewPerClientRateLimiter(rps float64, burst int) *PerClientRateLimiter {
	return &PerClientRateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rate.Limiter),
	}
}

// Middleware 返回 Gin 中间件
func (rl *PerClientRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())
		if !limiter.Allow() {
			common.RespondErrorAbort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}

func (rl *PerClientRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.clients[ip]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// 双重检查
	if limiter, exists := rl.clients[ip]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rps, rl.burst)
	rl.clients[ip] = limiter
	return limiter
}
