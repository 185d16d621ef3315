package auth

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/models"
	cryptopackage "github.com/nugw/ai-gallery/utils/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testProvider struct {
	db *gorm.DB
}

func (p *testProvider) DB() *gorm.DB                          { return p.db }
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

func setupLoginService(t *testing.T) *LoginService {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	hash, err := cryptopackage.GenerateFromPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: "frida", Password: hash}).Error)

	jwtService, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	return NewLoginService(&testProvider{db: db}, jwtService)
}

func TestLoginService_UnknownUser(t *testing.T) {
	service := setupLoginService(t)

	_, err := service.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestLoginService_WrongPassword(t *testing.T) {
	service := setupLoginService(t)

	_, err := service.Login(context.Background(), "frida", "battery staple")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginService_Success(t *testing.T) {
	service := setupLoginService(t)

	result, err := service.Login(context.Background(), "frida", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "frida", result.Username)
	assert.NotEmpty(t, result.AccessToken)
	assert.True(t, result.AccessTokenExpiry.After(time.Now()))

	username, err := service.jwtService.ParseToken(result.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "frida", username)
}
