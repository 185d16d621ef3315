package cmd

import (
	"log"

	"github.com/nugw/ai-gallery/config"
	"github.com/nugw/ai-gallery/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd 执行数据库DDL后退出
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		cfg := config.Get()

		logger, err := newLogger()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		dbFactory, err := database.NewFactory(cfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		defer dbFactory.Close()

		if err := dbFactory.AutoMigrate(); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		logger.Info("database schema is up to date",
			zap.String("type", dbFactory.GetProvider().Name()))
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
