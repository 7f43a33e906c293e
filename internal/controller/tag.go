package controller

import (
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/service"
	"github.com/ahaven/authors-haven-api/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TagApi 标签控制器
type TagApi struct {
	logger     *zap.SugaredLogger
	tagService *service.TagService
}

// NewTagApi 创建标签控制器实例
func NewTagApi() *TagApi {
	return &TagApi{
		logger:     logger.GetSugaredLogger(),
		tagService: service.NewTagService(),
	}
}

// List 查看全部标签
func (api *TagApi) List(c *gin.Context) {
	list, err := api.tagService.List()
	if err != nil {
		handleServiceError(c, err, "获取标签失败")
		return
	}
	response.Success(c, "获取成功", gin.H{
		"total": len(list),
		"list":  list,
	})
}

// Trending 查看热门标签
func (api *TagApi) Trending(c *gin.Context) {
	list, err := api.tagService.Trending()
	if err != nil {
		handleServiceError(c, err, "获取热门标签失败")
		return
	}
	response.Success(c, "获取成功", gin.H{
		"total": len(list),
		"list":  list,
	})
}
