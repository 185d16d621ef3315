package images

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/api/middleware"
	"github.com/nugw/ai-gallery/cache/memory"
	"github.com/nugw/ai-gallery/config"
	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/models"
	"github.com/nugw/ai-gallery/database/repo/gallery"
	"github.com/nugw/ai-gallery/internal/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testProvider struct {
	db *gorm.DB
}

func (p *testProvider) DB() *gorm.DB { return p.db }
func (p *testProvider) WithContext(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx)
}
func (p *testProvider) Transaction(fn database.TxFunc) error { return p.db.Transaction(fn) }
func (p *testProvider) TransactionWithContext(ctx context.Context, fn database.TxFunc) error {
	return p.db.WithContext(ctx).Transaction(fn)
}
func (p *testProvider) AutoMigrate(models ...interface{}) error { return p.db.AutoMigrate(models...) }
func (p *testProvider) SQLDB() (*sql.DB, error)                 { return p.db.DB() }
func (p *testProvider) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
func (p *testProvider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
func (p *testProvider) Name() string { return "sqlite" }

func fakeAuth(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUsernameKey, username)
		c.Next()
	}
}

type imageTestEnv struct {
	router    *gin.Engine
	store     *gallery.Store
	db        *gorm.DB
	clipboard *generate.Clipboard
}

// fakeImageAPI 模拟生成服务，总是返回固定 URL
func fakeImageAPI(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"url": "https://images.example.com/generated.png"}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func setupImageRouter(t *testing.T) *imageTestEnv {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Album{}, &models.Image{}))

	cacheProvider, err := memory.NewMemory(memory.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	require.NoError(t, err)
	t.Cleanup(func() { cacheProvider.Close() })

	client := generate.NewClient(&config.Config{
		GenerateAPIURL:    fakeImageAPI(t).URL,
		GenerateAPIKey:    "test-key",
		GenerateImageSize: "512x512",
		GenerateTimeout:   5 * time.Second,
	})
	clipboard := generate.NewClipboard(cacheProvider, time.Minute)

	provider := &testProvider{db: db}
	handler := NewHandler(provider, client, clipboard, zap.NewNop())

	router := gin.New()
	v1 := router.Group("/api/v1", fakeAuth("alice"))
	v1.POST("/generate", handler.GenerateHandler)
	v1.POST("/images/save", handler.SaveHandler)
	v1.GET("/albums/:id/images/:imageId", handler.GetImageHandler)
	v1.PUT("/albums/:id/images/:imageId", handler.UpdateImageHandler)
	v1.DELETE("/albums/:id/images/:imageId", handler.DeleteImageHandler)

	return &imageTestEnv{
		router:    router,
		store:     gallery.New(provider, "alice"),
		db:        db,
		clipboard: clipboard,
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) common.Response {
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedAlbum(t *testing.T, env *imageTestEnv, name string) *models.Album {
	created, err := env.store.CreateAlbum(name)
	require.NoError(t, err)
	require.True(t, created)

	var album models.Album
	require.NoError(t, env.db.First(&album, "name = ? AND username = ?", name, "alice").Error)
	return &album
}

func seedImage(t *testing.T, env *imageTestEnv, albumID uint, prompt string) *models.Image {
	image := &models.Image{
		Prompt:   prompt,
		URL:      "https://images.example.com/" + prompt,
		AlbumID:  albumID,
		Username: "alice",
	}
	require.NoError(t, env.db.Create(image).Error)
	return image
}

// --- 生成 ---

func TestGenerate(t *testing.T) {
	env := setupImageRouter(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/generate", gin.H{"prompt": "a beach at dawn"})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "a beach at dawn", data["prompt"])
	assert.Equal(t, "https://images.example.com/generated.png", data["url"])
	assert.NotEmpty(t, data["token"])

	// 结果进入剪贴板
	pending, err := env.clipboard.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, data["token"], pending.Token)
}

func TestGenerate_Validation(t *testing.T) {
	env := setupImageRouter(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/generate", gin.H{"prompt": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A prompt is required to generate an image.", decodeResponse(t, w).Msg)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	w = doJSON(t, env.router, http.MethodPost, "/api/v1/generate", gin.H{"prompt": string(long)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Prompt must be less than 100 characters long.", decodeResponse(t, w).Msg)
}

// --- 保存 ---

func TestSaveImage(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")

	pending, err := env.clipboard.Put(context.Background(), "alice", "a beach at dawn", "https://images.example.com/1.png")
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/images/save", gin.H{
		"album_id": album.ID,
		"token":    pending.Token,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Contains(t, resp.Msg, "Holidays")

	loaded, err := env.store.LoadAlbum(album.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Images, 1)
	assert.Equal(t, "a beach at dawn", loaded.Images[0].Prompt)

	// 保存后剪贴板被清空
	got, err := env.clipboard.Get(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveImage_EmptyClipboard(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/images/save", gin.H{
		"album_id": album.ID,
		"token":    "stale-token",
	})
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestSaveImage_StaleToken(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")

	stale, err := env.clipboard.Put(context.Background(), "alice", "first", "https://images.example.com/1.png")
	require.NoError(t, err)
	_, err = env.clipboard.Put(context.Background(), "alice", "second", "https://images.example.com/2.png")
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/images/save", gin.H{
		"album_id": album.ID,
		"token":    stale.Token,
	})
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestSaveImage_MissingAlbum(t *testing.T) {
	env := setupImageRouter(t)

	pending, err := env.clipboard.Put(context.Background(), "alice", "orphan", "https://images.example.com/1.png")
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/images/save", gin.H{
		"album_id": 42,
		"token":    pending.Token,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 保存失败时剪贴板保留，方便换一个相册重试
	got, err := env.clipboard.Get(context.Background(), "alice")
	assert.NoError(t, err)
	assert.NotNil(t, got)
}

// --- 单图操作 ---

func TestGetImage(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")
	image := seedImage(t, env, album.ID, "a beach at dawn")

	w := doJSON(t, env.router, http.MethodGet,
		fmt.Sprintf("/api/v1/albums/%d/images/%d", album.ID, image.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "a beach at dawn", data["prompt"])
	assert.EqualValues(t, album.ID, data["album_id"])
}

func TestGetImage_NotFound(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")

	w := doJSON(t, env.router, http.MethodGet,
		fmt.Sprintf("/api/v1/albums/%d/images/42", album.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateImage(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")
	image := seedImage(t, env, album.ID, "a beach at dawn")

	w := doJSON(t, env.router, http.MethodPut,
		fmt.Sprintf("/api/v1/albums/%d/images/%d", album.ID, image.ID),
		gin.H{"prompt": "a beach at dusk"})
	assert.Equal(t, http.StatusOK, w.Code)

	loaded, err := env.store.LoadImage(album.ID, image.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "a beach at dusk", loaded.Prompt)
}

func TestUpdateImage_Validation(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")
	image := seedImage(t, env, album.ID, "a beach at dawn")

	w := doJSON(t, env.router, http.MethodPut,
		fmt.Sprintf("/api/v1/albums/%d/images/%d", album.ID, image.ID),
		gin.H{"prompt": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Image caption is required.", decodeResponse(t, w).Msg)
}

func TestDeleteImage(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")
	image := seedImage(t, env, album.ID, "a beach at dawn")

	w := doJSON(t, env.router, http.MethodDelete,
		fmt.Sprintf("/api/v1/albums/%d/images/%d", album.ID, image.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeResponse(t, w).Msg, "a beach at dawn")

	loaded, err := env.store.LoadImage(album.ID, image.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDeleteImage_NotFound(t *testing.T) {
	env := setupImageRouter(t)
	album := seedAlbum(t, env, "Holidays")

	w := doJSON(t, env.router, http.MethodDelete,
		fmt.Sprintf("/api/v1/albums/%d/images/42", album.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
