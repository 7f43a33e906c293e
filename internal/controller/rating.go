package controller

import (
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/middleware"
	"github.com/ahaven/authors-haven-api/internal/service"
	"github.com/ahaven/authors-haven-api/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RatingApi 评分控制器
type RatingApi struct {
	logger        *zap.SugaredLogger
	ratingService *service.RatingService
}

// NewRatingApi 创建评分控制器实例
func NewRatingApi() *RatingApi {
	return &RatingApi{
		logger:        logger.GetSugaredLogger(),
		ratingService: service.NewRatingService(),
	}
}

// Rate 给文章评分
func (api *RatingApi) Rate(c *gin.Context) {
	var req dto.RatingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.ratingService.Rate(middleware.GetUserID(c), c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err, "评分失败")
		return
	}
	response.Created(c, "评分成功", result)
}

// GetArticleRating 查看文章平均评分
func (api *RatingApi) GetArticleRating(c *gin.Context) {
	slug := c.Param("slug")
	average, count, err := api.ratingService.AverageForSlug(slug)
	if err != nil {
		handleServiceError(c, err, "获取评分失败")
		return
	}

	response.Success(c, "获取成功", dto.RatingResponse{
		ArticleSlug:   slug,
		AverageRating: average,
		RatingCount:   count,
	})
}

// GetAuthorRating 查看作者全部文章的平均评分
func (api *RatingApi) GetAuthorRating(c *gin.Context) {
	result, err := api.ratingService.AverageForAuthor(c.Param("username"))
	if err != nil {
		handleServiceError(c, err, "获取评分失败")
		return
	}
	response.Success(c, "获取成功", result)
}
