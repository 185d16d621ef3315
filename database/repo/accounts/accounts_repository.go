package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/dberr"
	"github.com/nugw/ai-gallery/database/models"
	cryptopackage "github.com/nugw/ai-gallery/utils/crypto"
	"gorm.io/gorm"
)

// ErrUsernameTaken 用户名已被占用
var ErrUsernameTaken = errors.New("username already taken")

// Repository 账户仓库 - 用户记录对核心只读，此处仅供 adduser 命令与测试使用
type Repository struct {
	db database.Provider
}

// NewRepository 创建新的账户仓库
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// GetUserByUsername 通过用户名获取用户，不存在时返回 (nil, nil)
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser 创建用户，密码以 argon2id 哈希存储
func (r *Repository) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	hashed, err := cryptopackage.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hashed,
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
