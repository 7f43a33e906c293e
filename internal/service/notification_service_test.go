package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRelay 记录推送调用的测试替身
type fakeRelay struct {
	mu      sync.Mutex
	userIDs []uint
}

func (r *fakeRelay) Publish(ctx context.Context, userID uint, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userIDs = append(r.userIDs, userID)
	return nil
}

// fakeSender 记录邮件调用的测试替身
type fakeSender struct {
	mu    sync.Mutex
	calls [][]string
}

func (s *fakeSender) Send(to []string, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, to)
	return nil
}

func newTestNotificationService(db *gorm.DB) (*NotificationService, *fakeRelay, *fakeSender) {
	relay := &fakeRelay{}
	sender := &fakeSender{}
	svc := &NotificationService{db: db, logger: testLogger(), relay: relay, mail: sender}
	return svc, relay, sender
}

func TestFanOutNewFollower(t *testing.T) {
	db := newTestDB(t)
	svc, relay, sender := newTestNotificationService(db)

	follower := seedUser(t, db, "follower")
	followed := seedUser(t, db, "followed")

	require.NoError(t, svc.fanOutNewFollower(follower.ID, followed))

	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, followed.ID, notifications[0].UserID)
	assert.Equal(t, model.NotificationTypeFollow, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "follower")

	assert.Equal(t, []uint{followed.ID}, relay.userIDs)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, []string{followed.Email}, sender.calls[0])
}

func TestFanOutNewArticleToFollowers(t *testing.T) {
	db := newTestDB(t)
	svc, relay, sender := newTestNotificationService(db)

	author := seedUser(t, db, "author")
	fanA := seedUser(t, db, "fan-a")
	fanB := seedUser(t, db, "fan-b")
	seedUser(t, db, "stranger")

	require.NoError(t, db.Create(&model.Follow{FollowerID: fanA.ID, FollowedID: author.ID}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: fanB.ID, FollowedID: author.ID}).Error)

	// fan-b 关闭站内通知但保留邮件通知
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", fanB.ID).
		Update("app_notifications", 0).Error)

	article := seedArticle(t, db, author, "新文章通知")
	require.NoError(t, svc.fanOutNewArticle(article))

	// 只有fan-a收到站内通知
	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, fanA.ID, notifications[0].UserID)
	assert.Equal(t, model.NotificationTypeNewArticle, notifications[0].Type)
	require.NotNil(t, notifications[0].ArticleID)
	assert.Equal(t, article.ID, *notifications[0].ArticleID)

	assert.Equal(t, []uint{fanA.ID}, relay.userIDs)

	// 两个粉丝都收到邮件，且合并为一封
	require.Len(t, sender.calls, 1)
	assert.ElementsMatch(t, []string{fanA.Email, fanB.Email}, sender.calls[0])
}

func TestFanOutNewCommentSkipsCommenter(t *testing.T) {
	db := newTestDB(t)
	svc, relay, _ := newTestNotificationService(db)

	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	favoriter := seedUser(t, db, "favoriter")
	article := seedArticle(t, db, author, "评论通知")

	// 评论者和另一位用户都收藏了文章
	require.NoError(t, db.Create(&model.Favorite{UserID: commenter.ID, ArticleID: article.ID}).Error)
	require.NoError(t, db.Create(&model.Favorite{UserID: favoriter.ID, ArticleID: article.ID}).Error)

	comment := &model.Comment{Body: "好文章", ArticleID: article.ID, UserID: commenter.ID}
	require.NoError(t, db.Create(comment).Error)

	require.NoError(t, svc.fanOutNewComment(comment, article))

	// 评论者本人不收到通知
	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, favoriter.ID, notifications[0].UserID)
	assert.Equal(t, model.NotificationTypeNewComment, notifications[0].Type)

	assert.Equal(t, []uint{favoriter.ID}, relay.userIDs)
}

func TestEmailOptOutIndependentOfApp(t *testing.T) {
	db := newTestDB(t)
	svc, relay, sender := newTestNotificationService(db)

	follower := seedUser(t, db, "follower")
	followed := seedUser(t, db, "followed")

	// 关闭邮件通知，保留站内通知
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", followed.ID).
		Update("email_notifications", 0).Error)
	require.NoError(t, db.First(followed, followed.ID).Error)

	require.NoError(t, svc.fanOutNewFollower(follower.ID, followed))

	assert.Equal(t, []uint{followed.ID}, relay.userIDs)
	assert.Empty(t, sender.calls)
}

func TestNotificationReadFlow(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newTestNotificationService(db)

	follower := seedUser(t, db, "follower")
	followed := seedUser(t, db, "followed")
	other := seedUser(t, db, "other")

	require.NoError(t, svc.fanOutNewFollower(follower.ID, followed))
	require.NoError(t, svc.fanOutNewFollower(other.ID, followed))

	unread, err := svc.GetUnreadCount(followed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	list, err := svc.GetUserNotifications(followed.ID, &dto.NotificationListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.List, 2)

	// 他人不能标记别人的通知
	err = svc.MarkAsRead(follower.ID, list.List[0].ID)
	assert.ErrorIs(t, err, ErrNoPermission)

	require.NoError(t, svc.MarkAsRead(followed.ID, list.List[0].ID))

	unread, err = svc.GetUnreadCount(followed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.MarkAllAsRead(followed.ID))
	unread, err = svc.GetUnreadCount(followed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
