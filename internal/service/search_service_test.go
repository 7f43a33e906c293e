package service

import (
	"testing"

	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByAuthor(t *testing.T) {
	db := newTestDB(t)
	articles := newTestArticleService(db)
	svc := &SearchService{db: db, logger: testLogger(), articles: articles}

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedArticle(t, db, alice, "爱丽丝的第一篇")
	seedArticle(t, db, alice, "爱丽丝的第二篇")
	seedArticle(t, db, bob, "鲍勃的文章")

	resp, err := svc.ByAuthor("alice", &dto.SearchRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	for _, item := range resp.List {
		assert.Equal(t, "alice", item.Author.Username)
	}

	_, err = svc.ByAuthor("ghost", &dto.SearchRequest{}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchByTitle(t *testing.T) {
	db := newTestDB(t)
	articles := newTestArticleService(db)
	svc := &SearchService{db: db, logger: testLogger(), articles: articles}

	alice := seedUser(t, db, "alice")
	seedArticle(t, db, alice, "Go 并发模式详解")
	seedArticle(t, db, alice, "数据库索引入门")

	resp, err := svc.ByTitle("并发", &dto.SearchRequest{}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Contains(t, resp.List[0].Title, "并发")

	resp, err = svc.ByTitle("不存在的标题", &dto.SearchRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)

	_, err = svc.ByTitle("   ", &dto.SearchRequest{}, nil)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestSearchByTag(t *testing.T) {
	db := newTestDB(t)
	articles := newTestArticleService(db)
	svc := &SearchService{db: db, logger: testLogger(), articles: articles}

	alice := seedUser(t, db, "alice")
	_, err := articles.Create(alice.ID, &dto.ArticleCreateRequest{
		Title:       "打了标签的文章",
		Description: "一篇关于并发的文章描述",
		Body:        "正文内容足够长以通过校验。",
		Tags:        []string{"Go", "并发"},
	})
	require.NoError(t, err)
	seedArticle(t, db, alice, "没有标签的文章")

	// 标签匹配大小写不敏感
	resp, err := svc.ByTag(" GO ", &dto.SearchRequest{}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "打了标签的文章", resp.List[0].Title)

	resp, err = svc.ByTag("rust", &dto.SearchRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)

	_, err = svc.ByTag("", &dto.SearchRequest{}, nil)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestSearchPagination(t *testing.T) {
	db := newTestDB(t)
	articles := newTestArticleService(db)
	svc := &SearchService{db: db, logger: testLogger(), articles: articles}

	alice := seedUser(t, db, "alice")
	for _, title := range []string{"系列文章一", "系列文章二", "系列文章三"} {
		seedArticle(t, db, alice, title)
	}

	resp, err := svc.ByTitle("系列文章", &dto.SearchRequest{Page: 1, PageSize: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.List, 2)

	resp, err = svc.ByTitle("系列文章", &dto.SearchRequest{Page: 2, PageSize: 2}, nil)
	require.NoError(t, err)
	assert.Len(t, resp.List, 1)
}
