package api

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
	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/models"
	"github.com/nugw/ai-gallery/internal/auth"
	cryptopackage "github.com/nugw/ai-gallery/utils/crypto"
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

func setupLoginRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	hash, err := cryptopackage.GenerateFromPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: "frida", Password: hash}).Error)

	jwtService, err := auth.NewJWTService("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)
	loginService := auth.NewLoginService(&testProvider{db: db}, jwtService)
	handler := NewLoginHandler(loginService, zap.NewNop())

	router := gin.New()
	router.POST("/api/auth/login", handler.LoginHandlerFunc)
	router.POST("/api/auth/logout", handler.LogoutHandlerFunc)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) common.Response {
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLoginHandler_Success(t *testing.T) {
	router := setupLoginRouter(t)

	w := postJSON(t, router, "/api/auth/login", gin.H{
		"username": "frida",
		"password": "correct horse",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "success", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
	assert.NotZero(t, data["access_token_expiry"])
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	router := setupLoginRouter(t)

	w := postJSON(t, router, "/api/auth/login", gin.H{
		"username": "ghost",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "Invalid username.", resp.Msg)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	router := setupLoginRouter(t)

	w := postJSON(t, router, "/api/auth/login", gin.H{
		"username": "frida",
		"password": "battery staple",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "Invalid password.", resp.Msg)
}

func TestLoginHandler_MissingFields(t *testing.T) {
	router := setupLoginRouter(t)

	w := postJSON(t, router, "/api/auth/login", gin.H{"username": "frida"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutHandler(t *testing.T) {
	router := setupLoginRouter(t)

	w := postJSON(t, router, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "Logout successful", resp.Msg)
}
