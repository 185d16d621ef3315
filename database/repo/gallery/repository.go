// Package gallery is the domain-facing persistence API over albums and
// images. A Store is built per request, scoped to the signed-in username;
// every statement it issues is filtered by that username, so one user's rows
// are never visible through another user's Store. An empty username matches
// no rows.
package gallery

import (
	"context"
	"errors"

	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/models"
	cryptopackage "github.com/nugw/ai-gallery/utils/crypto"
	"gorm.io/gorm"
)

// Fixed page sizes for browsing.
const (
	AlbumsPerPage = 5
	ImagesPerPage = 3
)

// Store 画廊仓库 - 封装单个用户范围内的相册与图片操作
type Store struct {
	db       database.Provider
	username string
}

// New 创建绑定到指定用户的仓库，每个请求创建一个
func New(db database.Provider, username string) *Store {
	return &Store{db: db, username: username}
}

// Username returns the username the Store is scoped to.
func (s *Store) Username() string {
	return s.username
}

// WithContext 返回带上下文的仓库
func (s *Store) WithContext(ctx context.Context) *Store {
	return &Store{db: &contextProvider{Provider: s.db, ctx: ctx}, username: s.username}
}

// AuthResult is the canonical authentication outcome. Callers interpret it
// three ways: unknown user, known user with a wrong password, authenticated.
type AuthResult struct {
	UserExists      bool
	PasswordMatches bool
}

// AuthenticateUser looks up the stored credential record and compares the
// supplied password against its argon2id hash. The username argument is
// explicit because authentication happens before a session identity exists.
func (s *Store) AuthenticateUser(username, password string) (AuthResult, error) {
	var user models.User
	err := s.db.DB().Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResult{}, nil
		}
		return AuthResult{}, err
	}

	ok, err := cryptopackage.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{UserExists: true, PasswordMatches: ok}, nil
}

// pageCount 按固定页大小折算页数，空集合仍为 1 页
func pageCount(total int64, perPage int) int {
	if total < 1 {
		total = 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// contextProvider 包装 Provider 添加上下文
type contextProvider struct {
	database.Provider
	ctx context.Context
}

func (c *contextProvider) DB() *gorm.DB {
	return c.Provider.WithContext(c.ctx)
}

func (c *contextProvider) Transaction(fn database.TxFunc) error {
	return c.Provider.TransactionWithContext(c.ctx, fn)
}
