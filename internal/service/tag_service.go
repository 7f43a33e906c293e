package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	tagService     *TagService
	tagServiceOnce sync.Once
)

const (
	// 热门标签缓存键
	trendingTagsCacheKey = "tags:trending"
	// 热门标签缓存有效期
	trendingTagsCacheTTL = 10 * time.Minute
	// 热门标签数量
	trendingTagsLimit = 10
)

// TagService 标签服务
type TagService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.SugaredLogger
}

// NewTagService 创建标签服务实例
func NewTagService() *TagService {
	tagServiceOnce.Do(func() {
		tagService = &TagService{
			db:     database.GetDB(),
			redis:  database.GetRedis(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return tagService
}

// ResolveTags 按名称查找或创建标签
// 名称统一去除首尾空白并转为小写，空名称忽略
func (s *TagService) ResolveTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag model.Tag
		if err := tx.Where("name = ?", name).
			FirstOrCreate(&tag, model.Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// List 获取全部标签
func (s *TagService) List() ([]dto.TagResponse, error) {
	var tags []model.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	list := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		list = append(list, dto.TagResponse{
			ID:   tag.ID,
			Name: tag.Name,
		})
	}
	return list, nil
}

// Trending 获取热门标签，按关联文章数降序
// 优先读取Redis缓存，缓存未命中时回源数据库
func (s *TagService) Trending() ([]dto.TrendingTagResponse, error) {
	ctx := context.Background()

	// 尝试读取缓存
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, trendingTagsCacheKey).Bytes(); err == nil {
			var cached []dto.TrendingTagResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	list, err := s.trendingFromDB()
	if err != nil {
		return nil, err
	}

	// 回填缓存，失败不影响响应
	if s.redis != nil {
		if data, err := json.Marshal(list); err == nil {
			if err := s.redis.Set(ctx, trendingTagsCacheKey, data, trendingTagsCacheTTL).Err(); err != nil {
				s.logger.Warnf("写入热门标签缓存失败: %v", err)
			}
		}
	}

	return list, nil
}

// RefreshTrendingCache 刷新热门标签缓存（定时任务调用）
func (s *TagService) RefreshTrendingCache() error {
	if s.redis == nil {
		return nil
	}

	list, err := s.trendingFromDB()
	if err != nil {
		return err
	}

	data, err := json.Marshal(list)
	if err != nil {
		return err
	}

	return s.redis.Set(context.Background(), trendingTagsCacheKey, data, trendingTagsCacheTTL).Err()
}

// trendingFromDB 从数据库统计热门标签
func (s *TagService) trendingFromDB() ([]dto.TrendingTagResponse, error) {
	var rows []struct {
		Name         string
		ArticleCount int64
	}

	err := s.db.Model(&model.ArticleTag{}).
		Select("tags.name AS name, COUNT(article_tags.article_id) AS article_count").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Group("tags.name").
		Order("article_count DESC").
		Limit(trendingTagsLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	list := make([]dto.TrendingTagResponse, 0, len(rows))
	for _, row := range rows {
		list = append(list, dto.TrendingTagResponse{
			Name:         row.Name,
			ArticleCount: row.ArticleCount,
		})
	}
	return list, nil
}
