package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig 保存 JWT 配置
type TokenConfig struct {
	Secret    []byte
	ExpiresIn time.Duration
}

// JWTService 签发与校验访问令牌
type JWTService struct {
	config TokenConfig
}

// NewJWTService 创建新的 JWT 服务
func NewJWTService(secret string, expiresIn time.Duration) (*JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long, got %d", len(secret))
	}
	if expiresIn <= 0 {
		return nil, errors.New("JWT expiry must be positive")
	}

	return &JWTService{
		config: TokenConfig{
			Secret:    []byte(secret),
			ExpiresIn: expiresIn,
		},
	}, nil
}

// GenerateAccessToken 生成访问令牌
func (s *JWTService) GenerateAccessToken(username string) (string, time.Time, error) {
	expiry := time.Now().Add(s.config.ExpiresIn)
	claims := jwt.MapClaims{
		"username": username,
		"type":     "access",
		"exp":      expiry.Unix(),
		"iat":      time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, expiry, nil
}

// ParseToken 解析并验证令牌，返回其中的用户名
func (s *JWTService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.config.Secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", errors.New("username not found in token claims")
	}

	return username, nil
}
