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

// NotificationApi 通知控制器
type NotificationApi struct {
	logger              *zap.SugaredLogger
	notificationService *service.NotificationService
}

// NewNotificationApi 创建通知控制器实例
func NewNotificationApi() *NotificationApi {
	return &NotificationApi{
		logger:              logger.GetSugaredLogger(),
		notificationService: service.NewNotificationService(),
	}
}

// List 查看自己的通知列表
func (api *NotificationApi) List(c *gin.Context) {
	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	list, err := api.notificationService.GetUserNotifications(middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "获取通知失败")
		return
	}
	response.Success(c, "获取成功", list)
}

// UnreadCount 查看未读通知数
func (api *NotificationApi) UnreadCount(c *gin.Context) {
	count, err := api.notificationService.GetUnreadCount(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err, "获取未读数失败")
		return
	}
	response.Success(c, "获取成功", gin.H{"unread_count": count})
}

// MarkAsRead 标记单条通知为已读
func (api *NotificationApi) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的通知ID", err)
		return
	}

	if err := api.notificationService.MarkAsRead(middleware.GetUserID(c), uint(id)); err != nil {
		handleServiceError(c, err, "标记已读失败")
		return
	}
	response.Success(c, "已标记为已读", nil)
}

// MarkAllAsRead 标记全部通知为已读
func (api *NotificationApi) MarkAllAsRead(c *gin.Context) {
	if err := api.notificationService.MarkAllAsRead(middleware.GetUserID(c)); err != nil {
		handleServiceError(c, err, "标记已读失败")
		return
	}
	response.Success(c, "全部通知已标记为已读", nil)
}
