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

// CommentApi 评论控制器
type CommentApi struct {
	logger         *zap.SugaredLogger
	commentService *service.CommentService
}

// NewCommentApi 创建评论控制器实例
func NewCommentApi() *CommentApi {
	return &CommentApi{
		logger:         logger.GetSugaredLogger(),
		commentService: service.NewCommentService(),
	}
}

// commentIDParam 解析路径中的评论ID
func commentIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return 0, false
	}
	return uint(id), true
}

// Create 在文章下发表评论
func (api *CommentApi) Create(c *gin.Context) {
	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	userID := middleware.GetUserID(c)
	comment, err := api.commentService.Create(userID, c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err, "发表评论失败")
		return
	}

	response.Created(c, "评论成功", api.commentService.BuildResponse(comment, &userID))
}

// Update 修改评论，原内容进入历史记录
func (api *CommentApi) Update(c *gin.Context) {
	id, ok := commentIDParam(c)
	if !ok {
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	userID := middleware.GetUserID(c)
	comment, err := api.commentService.Update(id, userID, &req)
	if err != nil {
		handleServiceError(c, err, "修改评论失败")
		return
	}

	response.Success(c, "修改成功", api.commentService.BuildResponse(comment, &userID))
}

// Delete 删除评论
func (api *CommentApi) Delete(c *gin.Context) {
	id, ok := commentIDParam(c)
	if !ok {
		return
	}

	if err := api.commentService.Delete(id, middleware.GetUserID(c), middleware.IsAdmin(c)); err != nil {
		handleServiceError(c, err, "删除评论失败")
		return
	}
	response.Success(c, "删除成功", nil)
}

// List 查看文章的评论列表
func (api *CommentApi) List(c *gin.Context) {
	var req dto.CommentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	list, err := api.commentService.List(c.Param("slug"), &req, middleware.GetOptionalUserID(c))
	if err != nil {
		handleServiceError(c, err, "获取评论失败")
		return
	}
	response.Success(c, "获取成功", list)
}

// ToggleLike 点赞或取消点赞评论
func (api *CommentApi) ToggleLike(c *gin.Context) {
	id, ok := commentIDParam(c)
	if !ok {
		return
	}

	liked, err := api.commentService.ToggleReaction(middleware.GetUserID(c), id)
	if err != nil {
		handleServiceError(c, err, "操作失败")
		return
	}

	api.respondToggle(c, liked)
}

// respondToggle 新增点赞返回201，取消点赞返回200
func (api *CommentApi) respondToggle(c *gin.Context, liked bool) {
	if liked {
		response.Created(c, "点赞成功", gin.H{"liked": liked})
		return
	}
	response.Success(c, "已取消点赞", gin.H{"liked": liked})
}
