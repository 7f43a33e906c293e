package service

import (
	"testing"

	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightRequiresTextInBody(t *testing.T) {
	db := newTestDB(t)
	svc := &HighlightService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")
	article := seedArticle(t, db, author, "划线测试")
	require.NoError(t, db.Model(article).Update("body", "第一段话。值得划线的句子。结尾。").Error)

	// 正文中存在的片段可以划线
	h, err := svc.Create(reader.ID, article.Slug, &dto.HighlightCreateRequest{
		Text:    "值得划线的句子",
		Comment: "说得好",
	})
	require.NoError(t, err)
	assert.NotZero(t, h.ID)

	// 正文中不存在的片段被拒绝
	_, err = svc.Create(reader.ID, article.Slug, &dto.HighlightCreateRequest{
		Text:    "凭空捏造的句子",
		Comment: "说得好",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	// 纯空白同样被拒绝
	_, err = svc.Create(reader.ID, article.Slug, &dto.HighlightCreateRequest{
		Text:    "   ",
		Comment: "说得好",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = svc.Create(reader.ID, "no-such-slug", &dto.HighlightCreateRequest{
		Text:    "值得划线的句子",
		Comment: "说得好",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHighlightListAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := &HighlightService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")
	other := seedUser(t, db, "other")
	article := seedArticle(t, db, author, "划线删除测试")
	require.NoError(t, db.Model(article).Update("body", "甲句。乙句。").Error)

	first, err := svc.Create(reader.ID, article.Slug, &dto.HighlightCreateRequest{Text: "甲句", Comment: "先"})
	require.NoError(t, err)
	_, err = svc.Create(other.ID, article.Slug, &dto.HighlightCreateRequest{Text: "乙句", Comment: "后"})
	require.NoError(t, err)

	list, err := svc.List(article.Slug)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "甲句", list[0].Text)
	assert.Equal(t, "reader", list[0].User.Username)

	// 他人不能删除
	err = svc.Delete(first.ID, other.ID, false)
	assert.ErrorIs(t, err, ErrNoPermission)

	// 管理员可以删除
	require.NoError(t, svc.Delete(first.ID, other.ID, true))

	err = svc.Delete(first.ID, reader.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err = svc.List(article.Slug)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
