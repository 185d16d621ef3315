package database

import (
	"fmt"

	"github.com/nugw/ai-gallery/config"
	"github.com/nugw/ai-gallery/database/models"
	"go.uber.org/zap"
)

// Factory 数据库工厂 - 负责创建和管理数据库提供者
type Factory struct {
	provider Provider
	log      *zap.Logger
}

// NewFactory 创建新的数据库工厂
func NewFactory(cfg *config.Config, log *zap.Logger) (*Factory, error) {
	provider, err := NewGormProvider(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database provider: %w", err)
	}

	log.Info("database provider initialized", zap.String("provider", provider.Name()))

	return &Factory{
		provider: provider,
		log:      log,
	}, nil
}

// GetProvider 获取数据库提供者
func (f *Factory) GetProvider() Provider {
	return f.provider
}

// AutoMigrate 自动迁移数据库结构
func (f *Factory) AutoMigrate() error {
	if f.provider == nil {
		return fmt.Errorf("database provider not initialized")
	}

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Album{},
		&models.Image{},
	}

	f.log.Info("running database auto migration")
	if err := f.provider.AutoMigrate(modelsToMigrate...); err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	f.log.Info("database auto migration completed")
	return nil
}

// Ping 检查数据库连接
func (f *Factory) Ping() error {
	if f.provider == nil {
		return fmt.Errorf("database provider not initialized")
	}
	return f.provider.Ping()
}

// Close 关闭数据库连接
func (f *Factory) Close() error {
	if f.provider != nil {
		return f.provider.Close()
	}
	return nil
}
