package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nugw/ai-gallery/api/core"
	"github.com/nugw/ai-gallery/cache"
	"github.com/nugw/ai-gallery/config"
	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/internal/auth"
	"github.com/nugw/ai-gallery/internal/generate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newLogger() (*zap.Logger, error) {
	if config.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.DBType == "sqlite" {
		if err := os.MkdirAll("./data", os.ModePerm); err != nil {
			logger.Fatal("failed to create data directory", zap.Error(err))
		}
	}

	dbFactory, err := database.NewFactory(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	logger.Info("database initialized", zap.String("type", dbFactory.GetProvider().Name()))

	// 自动DDL
	if err := dbFactory.AutoMigrate(); err != nil {
		logger.Fatal("failed to auto migrate database", zap.Error(err))
	}

	cacheProvider, err := cache.NewProvider(cfg)
	if err != nil {
		logger.Fatal("failed to initialize cache", zap.Error(err))
	}
	logger.Info("cache initialized", zap.String("type", cacheProvider.Name()))

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		logger.Fatal("failed to initialize JWT", zap.Error(err))
	}
	loginService := auth.NewLoginService(dbFactory.GetProvider(), jwtService)

	generator := generate.NewClient(cfg)
	clipboard := generate.NewClipboard(cacheProvider, cfg.ClipboardTTL)

	deps := &core.ServerDependencies{
		DBFactory:     dbFactory,
		CacheProvider: cacheProvider,
		JWTService:    jwtService,
		LoginService:  loginService,
		Generator:     generator,
		Clipboard:     clipboard,
		Logger:        logger,
	}

	// 启动gin
	server := core.StartServer(deps)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := cacheProvider.Close(); err != nil {
		logger.Error("error closing cache", zap.Error(err))
	}
	if err := dbFactory.Close(); err != nil {
		logger.Error("error closing database", zap.Error(err))
	}

	logger.Info("server exited successfully")
}
