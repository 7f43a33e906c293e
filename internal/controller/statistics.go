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

// StatisticsApi 阅读统计控制器
type StatisticsApi struct {
	logger            *zap.SugaredLogger
	statisticsService *service.StatisticsService
}

// NewStatisticsApi 创建阅读统计控制器实例
func NewStatisticsApi() *StatisticsApi {
	return &StatisticsApi{
		logger:            logger.GetSugaredLogger(),
		statisticsService: service.NewStatisticsService(),
	}
}

// GetReadStatistics 作者查看自己文章的阅读统计
// 统计按作者归属，只能查到属于自己的文章
func (api *StatisticsApi) GetReadStatistics(c *gin.Context) {
	var req dto.StatisticsQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.statisticsService.GetReadStatisticsByUser(
		middleware.GetUserID(c), c.Param("slug"), req.Year, req.Month)
	if err != nil {
		handleServiceError(c, err, "获取阅读统计失败")
		return
	}
	response.Success(c, "获取成功", result)
}
