package service

import (
	"testing"

	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSelfAlwaysConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := &InteractionService{db: db, logger: testLogger()}

	user := seedUser(t, db, "narcissist")

	// 无论当前状态如何，关注自己都返回冲突
	err := svc.Follow(user.ID, "narcissist")
	assert.ErrorIs(t, err, ErrConflict)

	err = svc.Follow(user.ID, "narcissist")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestFollowAndUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := &InteractionService{db: db, logger: testLogger()}

	follower := seedUser(t, db, "follower")
	followed := seedUser(t, db, "followed")

	require.NoError(t, svc.Follow(follower.ID, "followed"))

	// 重复关注不产生新记录
	require.NoError(t, svc.Follow(follower.ID, "followed"))
	var count int64
	db.Model(&model.Follow{}).Where("follower_id = ?", follower.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.True(t, svc.IsFollowing(follower.ID, followed.ID))

	// 粉丝和关注列表
	followers, err := svc.Followers("followed")
	require.NoError(t, err)
	require.Len(t, followers.List, 1)
	assert.Equal(t, "follower", followers.List[0].Username)

	followings, err := svc.Followings("follower")
	require.NoError(t, err)
	require.Len(t, followings.List, 1)
	assert.Equal(t, "followed", followings.List[0].Username)

	// 取消关注
	require.NoError(t, svc.Unfollow(follower.ID, "followed"))
	assert.False(t, svc.IsFollowing(follower.ID, followed.ID))

	// 未关注状态下取消关注
	err = svc.Unfollow(follower.ID, "followed")
	assert.ErrorIs(t, err, ErrNotFound)

	// 目标用户不存在
	err = svc.Follow(follower.ID, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := &InteractionService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")
	article := seedArticle(t, db, author, "收藏测试")

	require.NoError(t, svc.Favorite(reader.ID, article.Slug))
	require.NoError(t, svc.Favorite(reader.ID, article.Slug))

	var count int64
	db.Model(&model.Favorite{}).Where("user_id = ?", reader.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.Unfavorite(reader.ID, article.Slug))

	// 未收藏状态下取消收藏
	err := svc.Unfavorite(reader.ID, article.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookmarkList(t *testing.T) {
	db := newTestDB(t)
	svc := &InteractionService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")
	first := seedArticle(t, db, author, "第一篇书签")
	second := seedArticle(t, db, author, "第二篇书签")

	require.NoError(t, svc.Bookmark(reader.ID, first.Slug))
	require.NoError(t, svc.Bookmark(reader.ID, second.Slug))
	require.NoError(t, svc.Bookmark(reader.ID, second.Slug))

	list, err := svc.ListBookmarks(reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)

	require.NoError(t, svc.Unbookmark(reader.ID, first.Slug))

	list, err = svc.ListBookmarks(reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, second.Slug, list.List[0].Slug)
}
