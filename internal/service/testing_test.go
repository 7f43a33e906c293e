package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库只允许单连接，避免每个连接各自一个空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.InitTables(db))
	return db
}

// testLogger 测试用的空日志器
func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// seedUser 创建测试用户
func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedArticle 创建测试文章
func seedArticle(t *testing.T, db *gorm.DB, author *model.User, title string) *model.Article {
	t.Helper()

	article := &model.Article{
		Slug:        GenerateSlug(title, time.Now()),
		Title:       title,
		Description: "一篇测试文章的描述",
		Body:        "这是测试文章的正文内容，足够长以通过校验。",
		UserID:      author.ID,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

// newTestArticleService 构造文章服务及其依赖
func newTestArticleService(db *gorm.DB) *ArticleService {
	log := testLogger()
	return &ArticleService{
		db:      db,
		logger:  log,
		tags:    &TagService{db: db, logger: log},
		ratings: &RatingService{db: db, logger: log},
		stats:   &StatisticsService{db: db, logger: log, now: time.Now},
	}
}
