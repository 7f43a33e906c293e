package service

import (
	"errors"
	"sync"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	interactionService     *InteractionService
	interactionServiceOnce sync.Once
)

// InteractionService 用户互动服务：收藏、书签、关注
type InteractionService struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	notifier *NotificationService
}

// NewInteractionService 创建互动服务实例
func NewInteractionService() *InteractionService {
	interactionServiceOnce.Do(func() {
		interactionService = &InteractionService{
			db:       database.GetDB(),
			logger:   logger.GetSugaredLogger(),
			notifier: NewNotificationService(),
		}
	})
	return interactionService
}

// findArticleBySlug 按slug查找文章
func (s *InteractionService) findArticleBySlug(slug string) (*model.Article, error) {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}
	return &article, nil
}

// Favorite 收藏文章（已收藏时保持原记录）
func (s *InteractionService) Favorite(userID uint, slug string) error {
	article, err := s.findArticleBySlug(slug)
	if err != nil {
		return err
	}

	var favorite model.Favorite
	return s.db.Where("user_id = ? AND article_id = ?", userID, article.ID).
		FirstOrCreate(&favorite, model.Favorite{
			UserID:    userID,
			ArticleID: article.ID,
		}).Error
}

// Unfavorite 取消收藏
func (s *InteractionService) Unfavorite(userID uint, slug string) error {
	article, err := s.findArticleBySlug(slug)
	if err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND article_id = ?", userID, article.ID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("尚未收藏该文章")
	}
	return nil
}

// Bookmark 添加书签（已添加时保持原记录）
func (s *InteractionService) Bookmark(userID uint, slug string) error {
	article, err := s.findArticleBySlug(slug)
	if err != nil {
		return err
	}

	var bookmark model.Bookmark
	return s.db.Where("user_id = ? AND article_id = ?", userID, article.ID).
		FirstOrCreate(&bookmark, model.Bookmark{
			UserID:    userID,
			ArticleID: article.ID,
		}).Error
}

// Unbookmark 移除书签
func (s *InteractionService) Unbookmark(userID uint, slug string) error {
	article, err := s.findArticleBySlug(slug)
	if err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND article_id = ?", userID, article.ID).
		Delete(&model.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("尚未添加该书签")
	}
	return nil
}

// ListBookmarks 获取当前用户的书签列表
func (s *InteractionService) ListBookmarks(userID uint) (*dto.BookmarkListResponse, error) {
	var bookmarks []model.Bookmark
	if err := s.db.Preload("Article").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error; err != nil {
		return nil, err
	}

	resp := &dto.BookmarkListResponse{
		Total: int64(len(bookmarks)),
		List:  make([]dto.BookmarkResponse, 0, len(bookmarks)),
	}
	for _, bm := range bookmarks {
		resp.List = append(resp.List, dto.BookmarkResponse{
			ID:        bm.ID,
			Slug:      bm.Article.Slug,
			Title:     bm.Article.Title,
			ImgURL:    bm.Article.ImgURL,
			CreatedAt: bm.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}

// Follow 关注用户
// 自己关注自己无论当前状态如何都返回冲突
func (s *InteractionService) Follow(followerID uint, username string) error {
	var followed model.User
	if err := s.db.Where("username = ?", username).First(&followed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("用户不存在")
		}
		return err
	}

	if followed.ID == followerID {
		return conflict("不能关注自己")
	}

	var follow model.Follow
	result := s.db.Where("follower_id = ? AND followed_id = ?", followerID, followed.ID).
		First(&follow)
	if result.Error == nil {
		// 已关注，保持原记录
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	follow = model.Follow{
		FollowerID: followerID,
		FollowedID: followed.ID,
	}
	if err := s.db.Create(&follow).Error; err != nil {
		return err
	}

	// 异步向被关注者推送新粉丝通知
	if s.notifier != nil {
		s.notifier.NotifyNewFollower(followerID, &followed)
	}

	return nil
}

// Unfollow 取消关注
func (s *InteractionService) Unfollow(followerID uint, username string) error {
	var followed model.User
	if err := s.db.Where("username = ?", username).First(&followed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("用户不存在")
		}
		return err
	}

	if followed.ID == followerID {
		return conflict("不能取消关注自己")
	}

	result := s.db.Where("follower_id = ? AND followed_id = ?", followerID, followed.ID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("尚未关注该用户")
	}
	return nil
}

// Followers 获取指定用户的粉丝列表
func (s *InteractionService) Followers(username string) (*dto.FollowListResponse, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("用户不存在")
		}
		return nil, err
	}

	var follows []model.Follow
	if err := s.db.Preload("Follower").
		Where("followed_id = ?", user.ID).
		Find(&follows).Error; err != nil {
		return nil, err
	}

	resp := &dto.FollowListResponse{
		Total: int64(len(follows)),
		List:  make([]dto.UserBriefInfo, 0, len(follows)),
	}
	for _, f := range follows {
		resp.List = append(resp.List, dto.UserBriefInfo{
			ID:       f.Follower.ID,
			Username: f.Follower.Username,
			Image:    f.Follower.Image,
		})
	}
	return resp, nil
}

// Followings 获取指定用户的关注列表
func (s *InteractionService) Followings(username string) (*dto.FollowListResponse, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("用户不存在")
		}
		return nil, err
	}

	var follows []model.Follow
	if err := s.db.Preload("Followed").
		Where("follower_id = ?", user.ID).
		Find(&follows).Error; err != nil {
		return nil, err
	}

	resp := &dto.FollowListResponse{
		Total: int64(len(follows)),
		List:  make([]dto.UserBriefInfo, 0, len(follows)),
	}
	for _, f := range follows {
		resp.List = append(resp.List, dto.UserBriefInfo{
			ID:       f.Followed.ID,
			Username: f.Followed.Username,
			Image:    f.Followed.Image,
		})
	}
	return resp, nil
}

// IsFollowing 判断follower是否已关注followed
func (s *InteractionService) IsFollowing(followerID, followedID uint) bool {
	var count int64
	if err := s.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
