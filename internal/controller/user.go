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

// UserApi 用户控制器
type UserApi struct {
	logger      *zap.SugaredLogger
	userService *service.UserService
}

// NewUserApi 创建用户控制器实例
func NewUserApi() *UserApi {
	return &UserApi{
		logger:      logger.GetSugaredLogger(),
		userService: service.NewUserService(),
	}
}

// Register 用户注册
func (api *UserApi) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	user, err := api.userService.Register(&req)
	if err != nil {
		handleServiceError(c, err, "注册失败")
		return
	}

	response.Created(c, "注册成功，请查收验证邮件", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login 用户登录
func (api *UserApi) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	token, err := api.userService.Login(&req)
	if err != nil {
		handleServiceError(c, err, "登录失败")
		return
	}

	response.Success(c, "登录成功", dto.TokenResponse{Token: token})
}

// Logout 注销当前令牌
func (api *UserApi) Logout(c *gin.Context) {
	token := middleware.GetToken(c)
	if token == "" {
		response.Unauthorized(c, "请先登录", nil)
		return
	}

	if err := api.userService.Logout(token); err != nil {
		api.logger.Errorf("注销失败: %v", err)
		response.InternalServerError(c, "注销失败", err)
		return
	}
	response.Success(c, "注销成功", nil)
}

// SocialLogin 第三方登录
func (api *UserApi) SocialLogin(c *gin.Context) {
	var req dto.SocialLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	token, err := api.userService.SocialLogin(&req)
	if err != nil {
		handleServiceError(c, err, "登录失败")
		return
	}

	response.Success(c, "登录成功", dto.TokenResponse{Token: token})
}

// VerifyEmail 邮箱验证
func (api *UserApi) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.VerifyEmail(&req); err != nil {
		handleServiceError(c, err, "邮箱验证失败")
		return
	}
	response.Success(c, "邮箱验证成功", nil)
}

// ForgotPassword 发起密码重置
func (api *UserApi) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.ForgotPassword(&req); err != nil {
		handleServiceError(c, err, "操作失败")
		return
	}
	response.Success(c, "如果该邮箱已注册，重置邮件已发送", nil)
}

// ResetPassword 使用重置令牌设置新密码
func (api *UserApi) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.ResetPassword(&req); err != nil {
		handleServiceError(c, err, "重置密码失败")
		return
	}
	response.Success(c, "密码重置成功", nil)
}

// ChangePassword 修改密码
func (api *UserApi) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		handleServiceError(c, err, "修改密码失败")
		return
	}
	response.Success(c, "密码修改成功", nil)
}

// GetProfile 查看指定用户资料
func (api *UserApi) GetProfile(c *gin.Context) {
	username := c.Param("username")
	profile, err := api.userService.GetProfile(username, middleware.GetOptionalUserID(c))
	if err != nil {
		handleServiceError(c, err, "获取资料失败")
		return
	}
	response.Success(c, "获取成功", profile)
}

// GetCurrentUser 查看自己的资料
func (api *UserApi) GetCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := api.userService.GetProfile(middleware.GetUsername(c), &userID)
	if err != nil {
		handleServiceError(c, err, "获取资料失败")
		return
	}
	response.Success(c, "获取成功", profile)
}

// UpdateProfile 更新自己的资料
func (api *UserApi) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	user, err := api.userService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "更新资料失败")
		return
	}

	response.Success(c, "更新成功", gin.H{
		"username": user.Username,
		"bio":      user.Bio,
		"image":    user.Image,
	})
}

// UpdateNotificationPreferences 更新通知偏好
func (api *UserApi) UpdateNotificationPreferences(c *gin.Context) {
	var req dto.NotificationPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.UpdateNotificationPreferences(middleware.GetUserID(c), &req); err != nil {
		handleServiceError(c, err, "更新通知偏好失败")
		return
	}
	response.Success(c, "通知偏好已更新", nil)
}

// ListUsers 管理员分页查询用户
func (api *UserApi) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	users, total, err := api.userService.ListUsers(&req)
	if err != nil {
		handleServiceError(c, err, "查询用户失败")
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":          u.ID,
			"username":    u.Username,
			"email":       u.Email,
			"role":        u.Role,
			"is_verified": u.IsVerified == 1,
			"created_at":  u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	response.Success(c, "查询成功", gin.H{
		"total": total,
		"list":  list,
	})
}

// AssignRole 超级管理员分配角色
func (api *UserApi) AssignRole(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID", err)
		return
	}

	var req dto.RoleAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.AssignRole(middleware.GetUserID(c), uint(targetID), req.Role); err != nil {
		handleServiceError(c, err, "分配角色失败")
		return
	}
	response.Success(c, "角色已更新", nil)
}

// DeleteUser 管理员删除用户
func (api *UserApi) DeleteUser(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID", err)
		return
	}

	if uint(targetID) == middleware.GetUserID(c) {
		response.BadRequest(c, "不能删除自己", nil)
		return
	}

	if err := api.userService.DeleteUser(uint(targetID)); err != nil {
		handleServiceError(c, err, "删除用户失败")
		return
	}
	response.Success(c, "用户已删除", nil)
}
