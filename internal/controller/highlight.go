package controller

import (
	"strconv"

	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/middleware"
	"github.com/ahaven/authors-haven-api/internal/service"
	"github.com/ahaven/authors-haven-api/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HighlightApi 划线评论控制器
type HighlightApi struct {
	logger           *zap.SugaredLogger
	highlightService *service.HighlightService
}

// NewHighlightApi 创建划线评论控制器实例
func NewHighlightApi() *HighlightApi {
	return &HighlightApi{
		logger:           logger.GetSugaredLogger(),
		highlightService: service.NewHighlightService(),
	}
}

// Create 对文章正文中的一段文字发表评论
func (api *HighlightApi) Create(c *gin.Context) {
	var req dto.HighlightCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	highlight, err := api.highlightService.Create(middleware.GetUserID(c), c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err, "发表划线评论失败")
		return
	}

	response.Created(c, "评论成功", gin.H{
		"id":   highlight.ID,
		"text": highlight.Text,
	})
}

// List 查看文章的划线评论
func (api *HighlightApi) List(c *gin.Context) {
	list, err := api.highlightService.List(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err, "获取划线评论失败")
		return
	}
	response.Success(c, "获取成功", gin.H{
		"total": len(list),
		"list":  list,
	})
}

// Delete 删除划线评论
func (api *HighlightApi) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return
	}

	if err := api.highlightService.Delete(uint(id), middleware.GetUserID(c), middleware.IsAdmin(c)); err != nil {
		handleServiceError(c, err, "删除划线评论失败")
		return
	}
	response.Success(c, "删除成功", nil)
}
