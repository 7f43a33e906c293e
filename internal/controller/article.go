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

// ArticleApi 文章控制器
type ArticleApi struct {
	logger         *zap.SugaredLogger
	articleService *service.ArticleService
}

// NewArticleApi 创建文章控制器实例
func NewArticleApi() *ArticleApi {
	return &ArticleApi{
		logger:         logger.GetSugaredLogger(),
		articleService: service.NewArticleService(),
	}
}

// Create 创建文章
func (api *ArticleApi) Create(c *gin.Context) {
	var req dto.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	article, err := api.articleService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "创建文章失败")
		return
	}

	response.Created(c, "创建成功", gin.H{
		"id":   article.ID,
		"slug": article.Slug,
	})
}

// Update 更新文章
func (api *ArticleApi) Update(c *gin.Context) {
	var req dto.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	article, err := api.articleService.Update(c.Param("slug"), middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "更新文章失败")
		return
	}

	response.Success(c, "更新成功", gin.H{
		"id":   article.ID,
		"slug": article.Slug,
	})
}

// Delete 删除文章
func (api *ArticleApi) Delete(c *gin.Context) {
	err := api.articleService.Delete(c.Param("slug"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleServiceError(c, err, "删除文章失败")
		return
	}
	response.Success(c, "删除成功", nil)
}

// Get 查看文章详情
// 访问会计入阅读统计，作者查看自己的文章不计数
func (api *ArticleApi) Get(c *gin.Context) {
	article, err := api.articleService.GetBySlug(c.Param("slug"), middleware.GetOptionalUserID(c))
	if err != nil {
		handleServiceError(c, err, "获取文章失败")
		return
	}
	response.Success(c, "获取成功", article)
}

// List 分页查看文章列表
func (api *ArticleApi) List(c *gin.Context) {
	var req dto.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	list, err := api.articleService.List(&req, middleware.GetOptionalUserID(c))
	if err != nil {
		handleServiceError(c, err, "获取文章列表失败")
		return
	}
	response.Success(c, "获取成功", list)
}

// ListMine 查看自己发表的文章
func (api *ArticleApi) ListMine(c *gin.Context) {
	var req dto.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	userID := middleware.GetUserID(c)
	list, err := api.articleService.ListByUser(userID, &req, &userID)
	if err != nil {
		handleServiceError(c, err, "获取文章列表失败")
		return
	}
	response.Success(c, "获取成功", list)
}
