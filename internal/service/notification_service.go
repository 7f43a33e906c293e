package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/ahaven/authors-haven-api/pkg/mail"
	"github.com/ahaven/authors-haven-api/pkg/push"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	notificationService     *NotificationService
	notificationServiceOnce sync.Once
)

// NotificationService 通知服务
// 负责站内通知与邮件通知的分发，两个渠道按用户偏好独立过滤
type NotificationService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	relay  push.Relay
	mail   mail.Sender
}

// NewNotificationService 创建通知服务实例
func NewNotificationService() *NotificationService {
	notificationServiceOnce.Do(func() {
		notificationService = &NotificationService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
			relay:  push.GetRelay(),
			mail:   mail.GetSender(),
		}
	})
	return notificationService
}

// pushEvent 推送到用户频道的事件结构
type pushEvent struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	ArticleID *uint  `json:"article_id,omitempty"`
}

// NotifyNewFollower 异步推送新粉丝通知
func (s *NotificationService) NotifyNewFollower(followerID uint, followed *model.User) {
	go func() {
		if err := s.fanOutNewFollower(followerID, followed); err != nil {
			s.logger.Errorf("推送新粉丝通知失败: %v", err)
		}
	}()
}

func (s *NotificationService) fanOutNewFollower(followerID uint, followed *model.User) error {
	var follower model.User
	if err := s.db.First(&follower, followerID).Error; err != nil {
		return err
	}

	// 重新加载收件人，通知偏好以数据库为准
	var recipient model.User
	if err := s.db.First(&recipient, followed.ID).Error; err != nil {
		return err
	}

	message := fmt.Sprintf("%s 关注了你", follower.Username)
	return s.dispatch(&follower, []model.User{recipient}, model.NotificationTypeFollow, message, nil)
}

// NotifyNewArticle 异步向作者的粉丝推送新文章通知
func (s *NotificationService) NotifyNewArticle(article *model.Article) {
	go func() {
		if err := s.fanOutNewArticle(article); err != nil {
			s.logger.Errorf("推送新文章通知失败: %v", err)
		}
	}()
}

func (s *NotificationService) fanOutNewArticle(article *model.Article) error {
	var author model.User
	if err := s.db.First(&author, article.UserID).Error; err != nil {
		return err
	}

	// 收件人为作者的全部粉丝
	var recipients []model.User
	if err := s.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", author.ID).
		Find(&recipients).Error; err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	message := fmt.Sprintf("%s 发布了新文章《%s》", author.Username, article.Title)
	articleID := article.ID
	return s.dispatch(&author, recipients, model.NotificationTypeNewArticle, message, &articleID)
}

// NotifyNewComment 异步向收藏该文章的用户推送新评论通知
func (s *NotificationService) NotifyNewComment(comment *model.Comment, article *model.Article) {
	go func() {
		if err := s.fanOutNewComment(comment, article); err != nil {
			s.logger.Errorf("推送新评论通知失败: %v", err)
		}
	}()
}

func (s *NotificationService) fanOutNewComment(comment *model.Comment, article *model.Article) error {
	var commenter model.User
	if err := s.db.First(&commenter, comment.UserID).Error; err != nil {
		return err
	}

	// 收件人为收藏该文章的用户，评论者本人除外
	var recipients []model.User
	if err := s.db.
		Joins("JOIN favorites ON favorites.user_id = users.id").
		Where("favorites.article_id = ? AND users.id <> ?", article.ID, comment.UserID).
		Find(&recipients).Error; err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	message := fmt.Sprintf("%s 评论了你收藏的文章《%s》", commenter.Username, article.Title)
	articleID := article.ID
	return s.dispatch(&commenter, recipients, model.NotificationTypeNewComment, message, &articleID)
}

// dispatch 按用户偏好分发通知
// 站内渠道逐人落库并推送，邮件渠道合并为一封多收件人邮件
func (s *NotificationService) dispatch(sender *model.User, recipients []model.User, notifType, message string, articleID *uint) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	var emails []string
	for _, user := range recipients {
		if user.EmailNotifications == 1 && user.Email != "" {
			emails = append(emails, user.Email)
		}
		if user.AppNotifications != 1 {
			continue
		}

		notification := model.Notification{
			UserID:    user.ID,
			SenderID:  &sender.ID,
			ArticleID: articleID,
			Type:      notifType,
			Message:   message,
		}
		if err := s.db.Create(&notification).Error; err != nil {
			s.logger.Errorf("保存通知失败: 用户=%d err=%v", user.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if s.relay != nil {
			event := pushEvent{
				ID:        notification.ID,
				Type:      notifType,
				Message:   message,
				ArticleID: articleID,
			}
			if err := s.relay.Publish(ctx, user.ID, event); err != nil {
				s.logger.Warnf("实时推送失败: 用户=%d err=%v", user.ID, err)
			}
		}
	}

	if len(emails) > 0 && s.mail != nil {
		body := fmt.Sprintf("<p>%s</p>", message)
		if err := s.mail.Send(emails, "你有一条新通知", body); err != nil {
			s.logger.Errorf("发送通知邮件失败: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// GetUserNotifications 获取用户的通知列表
func (s *NotificationService) GetUserNotifications(userID uint, req *dto.NotificationListRequest) (*dto.NotificationListResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	query := s.db.Model(&model.Notification{}).Where("user_id = ?", userID)
	if req.IsRead != nil {
		if *req.IsRead {
			query = query.Where("is_read = ?", 1)
		} else {
			query = query.Where("is_read = ?", 0)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var notifications []model.Notification
	if err := query.Preload("Sender").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	unread, err := s.GetUnreadCount(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Total:       total,
		UnreadCount: unread,
		List:        make([]dto.NotificationResponse, 0, len(notifications)),
	}
	for _, n := range notifications {
		item := dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			IsRead:    n.IsRead == 1,
			ArticleID: n.ArticleID,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if n.Sender != nil {
			item.Sender = &dto.UserBriefInfo{
				ID:       n.Sender.ID,
				Username: n.Sender.Username,
				Image:    n.Sender.Image,
			}
		}
		resp.List = append(resp.List, item)
	}
	return resp, nil
}

// GetUnreadCount 获取用户未读通知数
func (s *NotificationService) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, 0).
		Count(&count).Error
	return count, err
}

// MarkAsRead 标记单条通知为已读
func (s *NotificationService) MarkAsRead(userID, notificationID uint) error {
	var notification model.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("通知不存在")
		}
		return err
	}

	if notification.UserID != userID {
		return noPermission("无权操作该通知")
	}

	if notification.IsRead == 1 {
		return nil
	}
	return s.db.Model(&notification).Update("is_read", 1).Error
}

// MarkAllAsRead 标记用户全部通知为已读
func (s *NotificationService) MarkAllAsRead(userID uint) error {
	return s.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, 0).
		Update("is_read", 1).Error
}

// CleanupReadNotifications 清理30天前的已读通知，由定时任务调用
func (s *NotificationService) CleanupReadNotifications() error {
	cutoff := time.Now().AddDate(0, 0, -30)
	result := s.db.Where("is_read = ? AND created_at < ?", 1, cutoff).
		Delete(&model.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		s.logger.Infof("清理已读通知 %d 条", result.RowsAffected)
	}
	return nil
}
