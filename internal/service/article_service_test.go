package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	now := time.Unix(1700000000, 0)

	// 标题转小写并以连字符连接
	slug := GenerateSlug("Andela is Awesome", now)
	assert.Equal(t, fmt.Sprintf("andela-is-awesome-%d", now.Unix()), slug)

	// 连续分隔符折叠为单个连字符
	slug = GenerateSlug("  Hello,   World!  ", now)
	assert.Equal(t, fmt.Sprintf("hello-world-%d", now.Unix()), slug)

	// 无有效字符时使用兜底前缀
	slug = GenerateSlug("!!!", now)
	assert.True(t, strings.HasPrefix(slug, "article-"))
}

func TestArticleCreateWithTags(t *testing.T) {
	db := newTestDB(t)
	svc := newTestArticleService(db)

	author := seedUser(t, db, "author")

	article, err := svc.Create(author.ID, &dto.ArticleCreateRequest{
		Title:       "Go并发模式",
		Description: "一篇关于并发模式的文章",
		Body:        "正文内容",
		Tags:        []string{"Go", " 并发 ", "go"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, article.Slug)

	// 标签去重且小写化
	require.Len(t, article.Tags, 2)
	names := []string{article.Tags[0].Name, article.Tags[1].Name}
	assert.Contains(t, names, "go")
	assert.Contains(t, names, "并发")
}

func TestArticleCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestArticleService(db)
	author := seedUser(t, db, "author")

	// 标题过短
	_, err := svc.Create(author.ID, &dto.ArticleCreateRequest{
		Title:       "ab",
		Description: "合法的描述内容",
		Body:        "正文",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	// 描述过短
	_, err = svc.Create(author.ID, &dto.ArticleCreateRequest{
		Title:       "合法标题",
		Description: "短",
		Body:        "正文",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	// 正文为空白
	_, err = svc.Create(author.ID, &dto.ArticleCreateRequest{
		Title:       "合法标题",
		Description: "合法的描述内容",
		Body:        "   ",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestArticleUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := newTestArticleService(db)

	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")

	article, err := svc.Create(author.ID, &dto.ArticleCreateRequest{
		Title:       "原始标题",
		Description: "原始描述内容",
		Body:        "原始正文",
		Tags:        []string{"old"},
	})
	require.NoError(t, err)

	// 非作者不能修改
	newTitle := "新的标题"
	_, err = svc.Update(article.Slug, other.ID, &dto.ArticleUpdateRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrNoPermission)

	// 只更新标题，其余字段保持原值
	updated, err := svc.Update(article.Slug, author.ID, &dto.ArticleUpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "新的标题", updated.Title)
	assert.Equal(t, "原始描述内容", updated.Description)
	assert.Equal(t, "原始正文", updated.Body)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "old", updated.Tags[0].Name)

	// 提供标签时整体替换
	newTags := []string{"fresh"}
	updated, err = svc.Update(article.Slug, author.ID, &dto.ArticleUpdateRequest{Tags: &newTags})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "fresh", updated.Tags[0].Name)
}

func TestArticleDeleteCleansTagLinks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestArticleService(db)

	author := seedUser(t, db, "author")
	article, err := svc.Create(author.ID, &dto.ArticleCreateRequest{
		Title:       "将被删除",
		Description: "待删除文章的描述",
		Body:        "正文",
		Tags:        []string{"temp"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(article.Slug, author.ID, false))

	var linkCount int64
	db.Model(&model.ArticleTag{}).Where("article_id = ?", article.ID).Count(&linkCount)
	assert.Equal(t, int64(0), linkCount)

	// 标签本身保留
	var tagCount int64
	db.Model(&model.Tag{}).Where("name = ?", "temp").Count(&tagCount)
	assert.Equal(t, int64(1), tagCount)

	_, err = svc.GetBySlug(article.Slug, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleGetBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := newTestArticleService(db)

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")

	article, err := svc.Create(author.ID, &dto.ArticleCreateRequest{
		Title:       "详情测试",
		Description: "详情测试的描述",
		Body:        "# 标题\n\n正文段落",
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Favorite{UserID: reader.ID, ArticleID: article.ID}).Error)

	viewerID := reader.ID
	resp, err := svc.GetBySlug(article.Slug, &viewerID)
	require.NoError(t, err)
	assert.Equal(t, "详情测试", resp.Title)
	assert.Equal(t, "author", resp.Author.Username)
	assert.Equal(t, int64(1), resp.FavoriteCount)
	assert.True(t, resp.Favorited)
	assert.Contains(t, resp.RenderedBody, "<h1>")

	// 访客视角未收藏
	resp, err = svc.GetBySlug(article.Slug, nil)
	require.NoError(t, err)
	assert.False(t, resp.Favorited)
}
