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

// SearchApi 检索控制器
type SearchApi struct {
	logger        *zap.SugaredLogger
	searchService *service.SearchService
}

// NewSearchApi 创建检索控制器实例
func NewSearchApi() *SearchApi {
	return &SearchApi{
		logger:        logger.GetSugaredLogger(),
		searchService: service.NewSearchService(),
	}
}

// ByAuthor 按作者用户名检索文章
func (api *SearchApi) ByAuthor(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	list, err := api.searchService.ByAuthor(c.Query("author"), &req, middleware.GetOptionalUserID(c))
	if err != nil {
		handleServiceError(c, err, "检索失败")
		return
	}
	response.Success(c, "检索成功", list)
}

// ByTitle 按标题关键词检索文章
func (api *SearchApi) ByTitle(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	list, err := api.searchService.ByTitle(c.Query("keyword"), &req, middleware.GetOptionalUserID(c))
	if err != nil {
		handleServiceError(c, err, "检索失败")
		return
	}
	response.Success(c, "检索成功", list)
}

// ByTag 按标签名检索文章
func (api *SearchApi) ByTag(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	list, err := api.searchService.ByTag(c.Query("tag"), &req, middleware.GetOptionalUserID(c))
	if err != nil {
		handleServiceError(c, err, "检索失败")
		return
	}
	response.Success(c, "检索成功", list)
}
