package service

import (
	"testing"

	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTagsNormalization(t *testing.T) {
	db := newTestDB(t)
	svc := &TagService{db: db, logger: testLogger()}

	tags, err := svc.ResolveTags(db, []string{" Go ", "go", "GORM", "", "  "})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Name)
	assert.Equal(t, "gorm", tags[1].Name)

	// 再次解析复用已有标签
	again, err := svc.ResolveTags(db, []string{"go"})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, tags[0].ID, again[0].ID)

	var count int64
	db.Model(&model.Tag{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestTrendingFromDB(t *testing.T) {
	db := newTestDB(t)
	svc := &TagService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	popular := seedArticle(t, db, author, "热门文章甲")
	second := seedArticle(t, db, author, "热门文章乙")

	tags, err := svc.ResolveTags(db, []string{"hot", "cold"})
	require.NoError(t, err)

	// hot 关联两篇文章，cold 关联一篇
	require.NoError(t, db.Create(&model.ArticleTag{ArticleID: popular.ID, TagID: tags[0].ID}).Error)
	require.NoError(t, db.Create(&model.ArticleTag{ArticleID: second.ID, TagID: tags[0].ID}).Error)
	require.NoError(t, db.Create(&model.ArticleTag{ArticleID: popular.ID, TagID: tags[1].ID}).Error)

	list, err := svc.trendingFromDB()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "hot", list[0].Name)
	assert.Equal(t, int64(2), list[0].ArticleCount)
	assert.Equal(t, "cold", list[1].Name)

	// 无Redis时Trending直接回源数据库
	direct, err := svc.Trending()
	require.NoError(t, err)
	assert.Equal(t, list, direct)
}
