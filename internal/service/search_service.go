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
	searchService     *SearchService
	searchServiceOnce sync.Once
)

// SearchService 文章检索服务
// 支持按作者、标题关键词和标签三个维度检索
type SearchService struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	articles *ArticleService
}

// NewSearchService 创建检索服务实例
func NewSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchService = &SearchService{
			db:       database.GetDB(),
			logger:   logger.GetSugaredLogger(),
			articles: NewArticleService(),
		}
	})
	return searchService
}

// ByAuthor 按作者用户名检索文章
func (s *SearchService) ByAuthor(username string, req *dto.SearchRequest, viewerID *uint) (*dto.ArticleListResponse, error) {
	var author model.User
	if err := s.db.Where("username = ?", username).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("用户不存在")
		}
		return nil, err
	}

	query := s.db.Model(&model.Article{}).Where("user_id = ?", author.ID)
	return s.pageArticles(query, req, viewerID)
}

// ByTitle 按标题关键词检索文章
func (s *SearchService) ByTitle(keyword string, req *dto.SearchRequest, viewerID *uint) (*dto.ArticleListResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, invalidParam("搜索关键词不能为空")
	}

	query := s.db.Model(&model.Article{}).Where("title LIKE ?", "%"+keyword+"%")
	return s.pageArticles(query, req, viewerID)
}

// ByTag 按标签名检索文章
func (s *SearchService) ByTag(tagName string, req *dto.SearchRequest, viewerID *uint) (*dto.ArticleListResponse, error) {
	tagName = strings.ToLower(strings.TrimSpace(tagName))
	if tagName == "" {
		return nil, invalidParam("标签名不能为空")
	}

	query := s.db.Model(&model.Article{}).
		Joins("JOIN article_tags ON article_tags.article_id = articles.id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("tags.name = ?", tagName)
	return s.pageArticles(query, req, viewerID)
}

// pageArticles 对检索条件统一分页并构造响应
func (s *SearchService) pageArticles(query *gorm.DB, req *dto.SearchRequest, viewerID *uint) (*dto.ArticleListResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var articles []model.Article
	if err := query.Preload("Author").Preload("Tags").
		Order("articles.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	resp := &dto.ArticleListResponse{
		Total: total,
		List:  make([]dto.ArticleResponse, 0, len(articles)),
	}
	for i := range articles {
		resp.List = append(resp.List, *s.articles.buildResponse(&articles[i], viewerID))
	}
	return resp, nil
}
