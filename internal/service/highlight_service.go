package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	highlightService     *HighlightService
	highlightServiceOnce sync.Once
)

// HighlightService 划线评论服务
type HighlightService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewHighlightService 创建划线评论服务实例
func NewHighlightService() *HighlightService {
	highlightServiceOnce.Do(func() {
		highlightService = &HighlightService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return highlightService
}

// Create 对文章正文中的一段原文发表评论
// 被引用的文字必须确实出现在正文中
func (s *HighlightService) Create(userID uint, slug string, req *dto.HighlightCreateRequest) (*model.HighlightedText, error) {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	text := req.Text
	if strings.TrimSpace(text) == "" || !strings.Contains(article.Body, text) {
		return nil, invalidParam("引用的文字不在文章正文中")
	}

	highlight := &model.HighlightedText{
		Text:      text,
		Comment:   req.Comment,
		ArticleID: article.ID,
		UserID:    userID,
	}
	if err := s.db.Create(highlight).Error; err != nil {
		return nil, err
	}
	return highlight, nil
}

// List 获取文章的全部划线评论
func (s *HighlightService) List(slug string) ([]dto.HighlightResponse, error) {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	var highlights []model.HighlightedText
	if err := s.db.Preload("User").
		Where("article_id = ?", article.ID).
		Order("created_at ASC").
		Find(&highlights).Error; err != nil {
		return nil, err
	}

	list := make([]dto.HighlightResponse, 0, len(highlights))
	for _, h := range highlights {
		list = append(list, dto.HighlightResponse{
			ID:        h.ID,
			Text:      h.Text,
			Comment:   h.Comment,
			ArticleID: h.ArticleID,
			User: dto.UserBriefInfo{
				ID:       h.User.ID,
				Username: h.User.Username,
				Image:    h.User.Image,
			},
			CreatedAt: h.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

// Delete 删除划线评论，仅作者本人或管理员可删
func (s *HighlightService) Delete(highlightID uint, userID uint, isAdmin bool) error {
	var highlight model.HighlightedText
	if err := s.db.First(&highlight, highlightID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("划线评论不存在")
		}
		return err
	}

	if !isAdmin && highlight.UserID != userID {
		return noPermission("无权删除该划线评论")
	}
	return s.db.Delete(&highlight).Error
}
