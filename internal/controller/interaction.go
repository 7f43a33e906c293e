package controller

import (
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/middleware"
	"github.com/ahaven/authors-haven-api/internal/service"
	"github.com/ahaven/authors-haven-api/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InteractionApi 互动控制器：收藏、书签、关注
type InteractionApi struct {
	logger             *zap.SugaredLogger
	interactionService *service.InteractionService
}

// NewInteractionApi 创建互动控制器实例
func NewInteractionApi() *InteractionApi {
	return &InteractionApi{
		logger:             logger.GetSugaredLogger(),
		interactionService: service.NewInteractionService(),
	}
}

// Favorite 收藏文章
func (api *InteractionApi) Favorite(c *gin.Context) {
	if err := api.interactionService.Favorite(middleware.GetUserID(c), c.Param("slug")); err != nil {
		handleServiceError(c, err, "收藏失败")
		return
	}
	response.Success(c, "收藏成功", nil)
}

// Unfavorite 取消收藏
func (api *InteractionApi) Unfavorite(c *gin.Context) {
	if err := api.interactionService.Unfavorite(middleware.GetUserID(c), c.Param("slug")); err != nil {
		handleServiceError(c, err, "取消收藏失败")
		return
	}
	response.Success(c, "已取消收藏", nil)
}

// Bookmark 添加书签
func (api *InteractionApi) Bookmark(c *gin.Context) {
	if err := api.interactionService.Bookmark(middleware.GetUserID(c), c.Param("slug")); err != nil {
		handleServiceError(c, err, "添加书签失败")
		return
	}
	response.Success(c, "书签添加成功", nil)
}

// Unbookmark 移除书签
func (api *InteractionApi) Unbookmark(c *gin.Context) {
	if err := api.interactionService.Unbookmark(middleware.GetUserID(c), c.Param("slug")); err != nil {
		handleServiceError(c, err, "移除书签失败")
		return
	}
	response.Success(c, "书签已移除", nil)
}

// ListBookmarks 查看自己的书签列表
func (api *InteractionApi) ListBookmarks(c *gin.Context) {
	list, err := api.interactionService.ListBookmarks(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err, "获取书签失败")
		return
	}
	response.Success(c, "获取成功", list)
}

// Follow 关注用户
func (api *InteractionApi) Follow(c *gin.Context) {
	if err := api.interactionService.Follow(middleware.GetUserID(c), c.Param("username")); err != nil {
		handleServiceError(c, err, "关注失败")
		return
	}
	response.Success(c, "关注成功", nil)
}

// Unfollow 取消关注
func (api *InteractionApi) Unfollow(c *gin.Context) {
	if err := api.interactionService.Unfollow(middleware.GetUserID(c), c.Param("username")); err != nil {
		handleServiceError(c, err, "取消关注失败")
		return
	}
	response.Success(c, "已取消关注", nil)
}

// Followers 查看指定用户的粉丝列表
func (api *InteractionApi) Followers(c *gin.Context) {
	list, err := api.interactionService.Followers(c.Param("username"))
	if err != nil {
		handleServiceError(c, err, "获取粉丝列表失败")
		return
	}
	response.Success(c, "获取成功", list)
}

// Followings 查看指定用户的关注列表
func (api *InteractionApi) Followings(c *gin.Context) {
	list, err := api.interactionService.Followings(c.Param("username"))
	if err != nil {
		handleServiceError(c, err, "获取关注列表失败")
		return
	}
	response.Success(c, "获取成功", list)
}
