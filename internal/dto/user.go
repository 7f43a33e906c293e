package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"` // 记住登录，延长令牌有效期
}

// SocialLoginRequest 第三方登录请求
type SocialLoginRequest struct {
	Provider   string `json:"provider" binding:"required,oneof=google facebook twitter"`
	ProviderID string `json:"provider_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Username   string `json:"username" binding:"required,min=3,max=50"`
}

// TokenResponse 令牌响应
type TokenResponse struct {
	Token string `json:"token"`
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ProfileUpdateRequest 更新个人资料请求，未提供的字段保持原值
type ProfileUpdateRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// NotificationPreferenceRequest 通知偏好设置请求
// 邮件与应用内通知开关互相独立
type NotificationPreferenceRequest struct {
	EmailNotifications *bool `json:"email_notifications"`
	AppNotifications   *bool `json:"app_notifications"`
}

// RoleAssignRequest 角色分配请求（superAdmin使用）
type RoleAssignRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin superAdmin"`
}

// ProfileResponse 个人资料响应
type ProfileResponse struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email,omitempty"`
	Bio                string `json:"bio"`
	Image              string `json:"image"`
	Role               string `json:"role,omitempty"`
	IsVerified         bool   `json:"is_verified"`
	EmailNotifications bool   `json:"email_notifications,omitempty"`
	AppNotifications   bool   `json:"app_notifications,omitempty"`
	Following          bool   `json:"following"` // 当前登录用户是否已关注
}

// UserListRequest 用户列表请求（管理员使用）
type UserListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Keyword  string `form:"keyword"`
	Role     string `form:"role" binding:"omitempty,oneof=user admin superAdmin"`
}

// UserBriefInfo 用户简要信息
type UserBriefInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Image    string `json:"image"`
}
