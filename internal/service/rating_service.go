package service

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ratingService     *RatingService
	ratingServiceOnce sync.Once
)

// RatingService 评分服务
type RatingService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewRatingService 创建评分服务实例
func NewRatingService() *RatingService {
	ratingServiceOnce.Do(func() {
		ratingService = &RatingService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return ratingService
}

// Rate 对文章评分
// 同一用户重复评分会累积记录，平均分按全部记录计算
func (s *RatingService) Rate(userID uint, slug string, req *dto.RatingCreateRequest) (*dto.RatingResponse, error) {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	rating := &model.Rating{
		ArticleSlug: slug,
		UserID:      userID,
		Rating:      req.Rating,
	}
	if err := s.db.Create(rating).Error; err != nil {
		return nil, err
	}

	average, count, err := s.AverageForSlug(slug)
	if err != nil {
		return nil, err
	}

	return &dto.RatingResponse{
		ArticleSlug:   slug,
		AverageRating: average,
		RatingCount:   count,
	}, nil
}

// AverageForSlug 计算文章的平均评分
// 保留一位小数；无评分时返回"0"而非错误
func (s *RatingService) AverageForSlug(slug string) (string, int64, error) {
	var ratings []model.Rating
	if err := s.db.Where("article_slug = ?", slug).Find(&ratings).Error; err != nil {
		return "", 0, err
	}

	return averageOf(ratings), int64(len(ratings)), nil
}

// AverageForAuthor 计算作者全部文章的平均评分
func (s *RatingService) AverageForAuthor(username string) (*dto.AuthorRatingResponse, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("用户不存在")
		}
		return nil, err
	}

	var ratings []model.Rating
	err := s.db.
		Joins("JOIN articles ON articles.slug = ratings.article_slug").
		Where("articles.user_id = ?", user.ID).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	return &dto.AuthorRatingResponse{
		Author:        username,
		AverageRating: averageOf(ratings),
		RatingCount:   int64(len(ratings)),
	}, nil
}

// averageOf 计算评分记录的算术平均值，保留一位小数
func averageOf(ratings []model.Rating) string {
	if len(ratings) == 0 {
		return "0"
	}

	var sum float64
	for _, r := range ratings {
		v, err := strconv.ParseFloat(r.Rating, 64)
		if err != nil {
			continue
		}
		sum += v
	}

	return fmt.Sprintf("%.1f", sum/float64(len(ratings)))
}
