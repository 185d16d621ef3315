package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nugw/ai-gallery/cache"
)

// PendingImage 尚未存入相册的生成结果。Token 在保存时回传，
// 防止把过期的剪贴板内容存进相册。
type PendingImage struct {
	Token  string `json:"token"`
	Prompt string `json:"prompt"`
	URL    string `json:"url"`
}

// Clipboard 每个用户只保留最近一次生成的图片
type Clipboard struct {
	cache cache.Provider
	ttl   time.Duration
}

// NewClipboard 创建剪贴板
func NewClipboard(provider cache.Provider, ttl time.Duration) *Clipboard {
	return &Clipboard{cache: provider, ttl: ttl}
}

func clipboardKey(username string) string {
	return "clipboard:" + username
}

// Put 覆盖用户剪贴板内容
func (c *Clipboard) Put(ctx context.Context, username, prompt, url string) (*PendingImage, error) {
	pending := &PendingImage{
		Token:  uuid.New().String(),
		Prompt: prompt,
		URL:    url,
	}

	if err := c.cache.Set(ctx, clipboardKey(username), pending, c.ttl); err != nil {
		return nil, fmt.Errorf("failed to store pending image: %w", err)
	}
	return pending, nil
}

// Get 读取用户剪贴板，为空时返回 (nil, nil)
func (c *Clipboard) Get(ctx context.Context, username string) (*PendingImage, error) {
	var pending PendingImage
	err := c.cache.Get(ctx, clipboardKey(username), &pending)
	if err != nil {
		if cache.IsCacheMiss(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pending image: %w", err)
	}
	return &pending, nil
}

// Clear 清空用户剪贴板
func (c *Clipboard) Clear(ctx context.Context, username string) error {
	return c.cache.Delete(ctx, clipboardKey(username))
}
