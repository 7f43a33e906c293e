package middleware

import (
	"strings"

	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/ahaven/authors-haven-api/pkg/auth"
	"github.com/ahaven/authors-haven-api/pkg/response"
	"github.com/gin-gonic/gin"
)

// extractToken 从请求头中提取Bearer令牌
func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// JWTAuth JWT认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			response.Unauthorized(c, "请先登录", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			logger.Warnf("无效的令牌: %v", err)
			response.Unauthorized(c, "无效的令牌", err)
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("userRole", claims.Role)
		c.Set("token", token)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件
// 携带有效令牌时注入用户信息，未携带或无效时按匿名访问放行
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("userRole", claims.Role)
		c.Set("token", token)
		c.Next()
	}
}

// AdminAuth 管理员认证中间件，需在JWTAuth之后使用
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role != model.RoleAdmin && role != model.RoleSuperAdmin {
			response.Forbidden(c, "需要管理员权限", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SuperAdminAuth 超级管理员认证中间件，需在JWTAuth之后使用
func SuperAdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != model.RoleSuperAdmin {
			response.Forbidden(c, "需要超级管理员权限", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID 从上下文获取当前用户ID，未登录时返回0
func GetUserID(c *gin.Context) uint {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetOptionalUserID 从上下文获取当前用户ID指针，未登录时返回nil
func GetOptionalUserID(c *gin.Context) *uint {
	if id := GetUserID(c); id > 0 {
		return &id
	}
	return nil
}

// GetUsername 从上下文获取当前用户名
func GetUsername(c *gin.Context) string {
	if v, exists := c.Get("username"); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

// GetUserRole 从上下文获取当前用户角色
func GetUserRole(c *gin.Context) string {
	if v, exists := c.Get("userRole"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// IsAdmin 判断当前用户是否为管理员
func IsAdmin(c *gin.Context) bool {
	role := GetUserRole(c)
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

// GetToken 从上下文获取当前请求携带的令牌
func GetToken(c *gin.Context) string {
	if v, exists := c.Get("token"); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
