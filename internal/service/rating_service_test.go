package service

import (
	"testing"

	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateAndAverage(t *testing.T) {
	db := newTestDB(t)
	svc := &RatingService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")
	article := seedArticle(t, db, author, "评分测试")

	for _, score := range []string{"2", "4", "5"} {
		_, err := svc.Rate(reader.ID, article.Slug, &dto.RatingCreateRequest{Rating: score})
		require.NoError(t, err)
	}

	// (2+4+5)/3 = 3.666... 保留一位小数
	average, count, err := svc.AverageForSlug(article.Slug)
	require.NoError(t, err)
	assert.Equal(t, "3.7", average)
	assert.Equal(t, int64(3), count)
}

func TestAverageForSlugEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := &RatingService{db: db, logger: testLogger()}

	// 无评分时返回"0"而不是错误
	average, count, err := svc.AverageForSlug("never-rated")
	require.NoError(t, err)
	assert.Equal(t, "0", average)
	assert.Equal(t, int64(0), count)
}

func TestRateUnknownArticle(t *testing.T) {
	db := newTestDB(t)
	svc := &RatingService{db: db, logger: testLogger()}

	reader := seedUser(t, db, "reader")
	_, err := svc.Rate(reader.ID, "no-such-article", &dto.RatingCreateRequest{Rating: "5"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAverageForAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := &RatingService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")
	first := seedArticle(t, db, author, "第一篇")
	second := seedArticle(t, db, author, "第二篇")

	_, err := svc.Rate(reader.ID, first.Slug, &dto.RatingCreateRequest{Rating: "3"})
	require.NoError(t, err)
	_, err = svc.Rate(reader.ID, second.Slug, &dto.RatingCreateRequest{Rating: "5"})
	require.NoError(t, err)

	resp, err := svc.AverageForAuthor("author")
	require.NoError(t, err)
	assert.Equal(t, "4.0", resp.AverageRating)
	assert.Equal(t, int64(2), resp.RatingCount)

	// 用户不存在
	_, err = svc.AverageForAuthor("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
