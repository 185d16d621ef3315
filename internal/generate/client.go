// Package generate talks to the external image-generation API and keeps the
// latest generated image per user in a short-lived clipboard until the user
// saves it into an album or generates a new one.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nugw/ai-gallery/config"
	"golang.org/x/sync/singleflight"
)

// ErrNoImage API 未返回任何图片
var ErrNoImage = errors.New("image API returned no image")

// Client 图像生成 API 客户端
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	size       string

	// 相同 prompt 的并发请求只发出一次
	group singleflight.Group
}

// NewClient 创建图像生成客户端
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.GenerateTimeout},
		endpoint:   cfg.GenerateAPIURL,
		apiKey:     cfg.GenerateAPIKey,
		size:       cfg.GenerateImageSize,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type generateResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate submits the prompt and returns the URL of the generated image.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	url, err, _ := c.group.Do(prompt, func() (interface{}, error) {
		return c.generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return url.(string), nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Prompt: prompt,
		N:      1,
		Size:   c.size,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build image API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read image API response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode image API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("image API returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", ErrNoImage
	}

	return parsed.Data[0].URL, nil
}
