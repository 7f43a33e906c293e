package cmd

import (
	"fmt"
	"os"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/spf13/cobra"
)

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移",
	Long:  `根据模型定义创建或更新数据库表结构`,
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// runMigrate 执行迁移
func runMigrate() {
	if err := config.Init(configPath); err != nil {
		fmt.Printf("配置初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Printf("日志初始化失败: %v\n", err)
		os.Exit(1)
	}

	db := database.GetDB()
	if err := model.InitTables(db); err != nil {
		fmt.Printf("数据库迁移失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("数据库迁移完成")
}
