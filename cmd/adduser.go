package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/nugw/ai-gallery/config"
	"github.com/nugw/ai-gallery/database"
	"github.com/nugw/ai-gallery/database/repo/accounts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// adduserCmd 创建用户账号
var adduserCmd = &cobra.Command{
	Use:   "adduser",
	Short: "Create a user account",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		if username == "" || password == "" {
			log.Fatal("Both --username and --password are required")
		}

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

		repo := accounts.NewRepository(dbFactory.GetProvider())
		if _, err := repo.CreateUser(context.Background(), username, password); err != nil {
			if errors.Is(err, accounts.ErrUsernameTaken) {
				logger.Fatal("username is already taken", zap.String("username", username))
			}
			logger.Fatal("failed to create user", zap.Error(err))
		}
		logger.Info("user created", zap.String("username", username))
	},
}

func init() {
	rootCmd.AddCommand(adduserCmd)

	adduserCmd.Flags().String("username", "", "Username for the new account")
	adduserCmd.Flags().String("password", "", "Password for the new account")
}
