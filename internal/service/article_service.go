package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/ahaven/authors-haven-api/pkg/markdown"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	articleService     *ArticleService
	articleServiceOnce sync.Once
)

// ArticleService 文章服务
type ArticleService struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	tags     *TagService
	ratings  *RatingService
	stats    *StatisticsService
	notifier *NotificationService
}

// NewArticleService 创建文章服务实例
func NewArticleService() *ArticleService {
	articleServiceOnce.Do(func() {
		articleService = &ArticleService{
			db:       database.GetDB(),
			logger:   logger.GetSugaredLogger(),
			tags:     NewTagService(),
			ratings:  NewRatingService(),
			stats:    NewStatisticsService(),
			notifier: NewNotificationService(),
		}
	})
	return articleService
}

// GenerateSlug 根据标题和创建时间生成slug
// 唯一性只依赖时间戳粒度，不做全局冲突检查
func GenerateSlug(title string, t time.Time) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "article"
	}
	return fmt.Sprintf("%s-%d", slug, t.Unix())
}

// validateArticleFields 校验文章字段
func validateArticleFields(title, description, body string) error {
	if strings.TrimSpace(title) == "" ||
		strings.TrimSpace(description) == "" ||
		strings.TrimSpace(body) == "" {
		return invalidParam("标题、描述和正文不能为空")
	}
	if l := len(strings.TrimSpace(title)); l < 3 || l > 50 {
		return invalidParam("标题长度必须在3到50个字符之间")
	}
	if l := len(strings.TrimSpace(description)); l < 5 || l > 100 {
		return invalidParam("描述长度必须在5到100个字符之间")
	}
	return nil
}

// Create 创建文章
func (s *ArticleService) Create(userID uint, req *dto.ArticleCreateRequest) (*model.Article, error) {
	if err := validateArticleFields(req.Title, req.Description, req.Body); err != nil {
		return nil, err
	}

	now := time.Now()
	article := &model.Article{
		Slug:        GenerateSlug(req.Title, now),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Body:        req.Body,
		ImgURL:      req.ImgURL,
		UserID:      userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}

		// 解析并关联标签
		if len(req.Tags) > 0 {
			tags, err := s.tags.ResolveTags(tx, req.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(article).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		return tx.Preload("Author").Preload("Tags").First(article, article.ID).Error
	})
	if err != nil {
		return nil, err
	}

	// 异步向关注者推送新文章通知
	if s.notifier != nil {
		s.notifier.NotifyNewArticle(article)
	}

	return article, nil
}

// Update 更新文章，仅覆盖提供的字段
func (s *ArticleService) Update(slug string, userID uint, req *dto.ArticleUpdateRequest) (*model.Article, error) {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	if article.UserID != userID {
		return nil, noPermission("只能修改自己的文章")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if l := len(strings.TrimSpace(*req.Title)); l < 3 || l > 50 {
			return nil, invalidParam("标题长度必须在3到50个字符之间")
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if l := len(strings.TrimSpace(*req.Description)); l < 5 || l > 100 {
			return nil, invalidParam("描述长度必须在5到100个字符之间")
		}
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, invalidParam("正文不能为空")
		}
		updates["body"] = *req.Body
	}
	if req.ImgURL != nil {
		updates["img_url"] = *req.ImgURL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&article).Updates(updates).Error; err != nil {
				return err
			}
		}

		// 提供标签时整体替换关联，不做合并
		if req.Tags != nil {
			tags, err := s.tags.ResolveTags(tx, *req.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&article).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		return tx.Preload("Author").Preload("Tags").First(&article, article.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// Delete 删除文章，同时显式清理标签关联
func (s *ArticleService) Delete(slug string, userID uint, isAdmin bool) error {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("文章不存在")
		}
		return err
	}

	if !isAdmin && article.UserID != userID {
		return noPermission("只能删除自己的文章")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// 标签关联表未设置级联删除，需要显式清理
		if err := tx.Where("article_id = ?", article.ID).Delete(&model.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
}

// GetBySlug 获取文章详情
// viewerID为nil表示未登录访客；访问非本人文章时记录一次阅读
func (s *ArticleService) GetBySlug(slug string, viewerID *uint) (*dto.ArticleResponse, error) {
	var article model.Article
	if err := s.db.Preload("Author").Preload("Tags").
		Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	resp := s.buildResponse(&article, viewerID)
	resp.RenderedBody = markdown.RenderToHTML(article.Body)

	// 阅读计数作为副作用异步记录，失败不影响详情响应
	if s.stats != nil && (viewerID == nil || *viewerID != article.UserID) {
		go func(slug, author string) {
			if err := s.stats.RecordRead(slug, author); err != nil {
				s.logger.Warnf("记录阅读统计失败: %v", err)
			}
		}(article.Slug, article.Author.Username)
	}

	return resp, nil
}

// List 获取文章列表，按创建时间倒序
func (s *ArticleService) List(req *dto.ArticleListRequest, viewerID *uint) (*dto.ArticleListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	var total int64
	if err := s.db.Model(&model.Article{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var articles []model.Article
	if err := s.db.Preload("Author").Preload("Tags").
		Order("created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	resp := &dto.ArticleListResponse{
		Total: total,
		List:  make([]dto.ArticleResponse, 0, len(articles)),
	}
	for i := range articles {
		resp.List = append(resp.List, *s.buildResponse(&articles[i], viewerID))
	}
	return resp, nil
}

// ListByUser 获取指定作者的文章列表
func (s *ArticleService) ListByUser(userID uint, req *dto.ArticleListRequest, viewerID *uint) (*dto.ArticleListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := s.db.Model(&model.Article{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var articles []model.Article
	if err := query.Preload("Author").Preload("Tags").
		Order("created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	resp := &dto.ArticleListResponse{
		Total: total,
		List:  make([]dto.ArticleResponse, 0, len(articles)),
	}
	for i := range articles {
		resp.List = append(resp.List, *s.buildResponse(&articles[i], viewerID))
	}
	return resp, nil
}

// buildResponse 构造文章响应，附带标签、收藏数和平均评分等派生字段
func (s *ArticleService) buildResponse(article *model.Article, viewerID *uint) *dto.ArticleResponse {
	tagNames := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	var favoriteCount int64
	if err := s.db.Model(&model.Favorite{}).
		Where("article_id = ?", article.ID).Count(&favoriteCount).Error; err != nil {
		s.logger.Warnf("统计收藏数失败: %v", err)
	}

	// 未登录访客恒为未收藏
	favorited := false
	if viewerID != nil {
		var count int64
		if err := s.db.Model(&model.Favorite{}).
			Where("user_id = ? AND article_id = ?", *viewerID, article.ID).
			Count(&count).Error; err == nil {
			favorited = count > 0
		}
	}

	average := "0"
	if s.ratings != nil {
		if avg, _, err := s.ratings.AverageForSlug(article.Slug); err == nil {
			average = avg
		}
	}

	return &dto.ArticleResponse{
		ID:            article.ID,
		Slug:          article.Slug,
		Title:         article.Title,
		Description:   article.Description,
		Body:          article.Body,
		ImgURL:        article.ImgURL,
		Author: dto.UserBriefInfo{
			ID:       article.Author.ID,
			Username: article.Author.Username,
			Image:    article.Author.Image,
		},
		Tags:          tagNames,
		FavoriteCount: favoriteCount,
		Favorited:     favorited,
		AverageRating: average,
		CreatedAt:     article.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     article.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
