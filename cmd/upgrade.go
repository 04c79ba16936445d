package cmd

import (
	"fmt"
	"os"

	internalApp "github.com/haierkeys/product-note-service/internal/app"
	"github.com/haierkeys/product-note-service/internal/dao"
	"github.com/haierkeys/product-note-service/internal/upgrade"
	"github.com/haierkeys/product-note-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade legacy database schema and data to the latest version",
	Long: `Upgrade legacy database schema and data to the latest version.

This command checks the applied schema versions and runs all pending migrations,
including the conversion of product notes from the product-only layout to the
version-aware layout. Already applied migrations are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		if len(configPath) <= 0 {
			configPath = "config/config.yaml"
		}

		appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
		if err != nil {
			bootstrapLogger.Error("failed to load config", zap.Error(err))
			os.Exit(1)
		}

		bootstrapLogger.Info("config loaded", zap.String("path", configRealpath))

		// 初始化日志
		lg, err := logger.NewLogger(appConfig.LoggerConfig())
		if err != nil {
			bootstrapLogger.Error("failed to init logger", zap.Error(err))
			os.Exit(1)
		}
		defer lg.Sync()

		db, err := dao.NewDBEngineWithConfig(appConfig.DaoConfig(), lg)
		if err != nil {
			bootstrapLogger.Error("failed to init database", zap.Error(err))
			os.Exit(1)
		}

		fmt.Println("Starting database upgrade...")

		// 执行升级
		if err := upgrade.Execute(db, lg, internalApp.Version, appConfig.Database.AutoMigrate); err != nil {
			bootstrapLogger.Error("upgrade failed", zap.Error(err))
			os.Exit(1)
		}

		fmt.Println("Database upgrade completed successfully!")
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().StringP("config", "c", "", "config file path")
}
