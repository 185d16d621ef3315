package accounts

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

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

func setupRepository(t *testing.T) *Repository {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewRepository(&testProvider{db: db})
}

func TestCreateUser(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "frida", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "frida", user.Username)
	assert.NotEqual(t, "correct horse", user.Password)

	// 存储的是 argon2id 哈希
	ok, err := cryptopackage.ComparePasswordAndHash("correct horse", user.Password)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "frida", "correct horse")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "frida", "other password")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserByUsername(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "frida", "correct horse")
	require.NoError(t, err)

	user, err := repo.GetUserByUsername(ctx, "frida")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "frida", user.Username)

	missing, err := repo.GetUserByUsername(ctx, "ghost")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
