package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/repo/gallery"
)

// 三态登录结果的两个失败分支
var (
	ErrUnknownUser   = errors.New("unknown user")
	ErrWrongPassword = errors.New("wrong password")
)

// LoginResult 登录结果
type LoginResult struct {
	Username          string
	AccessToken       string
	AccessTokenExpiry time.Time
}

// LoginService 登录服务
type LoginService struct {
	db         database.Provider
	jwtService *JWTService
}

// NewLoginService 创建新的登录服务
func NewLoginService(db database.Provider, jwtService *JWTService) *LoginService {
	return &LoginService{
		db:         db,
		jwtService: jwtService,
	}
}

// Login validates credentials and issues an access token. The three outcomes
// are: ErrUnknownUser, ErrWrongPassword, or a token.
func (s *LoginService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	store := gallery.New(s.db, "").WithContext(ctx)

	result, err := store.AuthenticateUser(username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	if !result.UserExists {
		return nil, ErrUnknownUser
	}
	if !result.PasswordMatches {
		return nil, ErrWrongPassword
	}

	token, expiry, err := s.jwtService.GenerateAccessToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		Username:          username,
		AccessToken:       token,
		AccessTokenExpiry: expiry,
	}, nil
}
