package model

import (
	"fmt"

	"gorm.io/gorm"
)

// 需要自动迁移的模型列表
var models = []interface{}{
	&User{},
	&Article{},
	&Tag{},
	&ArticleTag{},
	&Comment{},
	&CommentReaction{},
	&Favorite{},
	&Bookmark{},
	&Follow{},
	&Rating{},
	&Statistics{},
	&Report{},
	&HighlightedText{},
	&Notification{},
}

// InitTables 初始化数据库表
func InitTables(db *gorm.DB) error {
	fmt.Println("开始初始化数据库表...")

	// 自动迁移表结构
	err := db.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("自动迁移数据库表失败: %v", err)
	}

	fmt.Println("数据库表初始化完成")
	return nil
}
