package controller

import (
	"errors"

	"github.com/ahaven/authors-haven-api/internal/service"
	"github.com/ahaven/authors-haven-api/pkg/response"
	"github.com/gin-gonic/gin"
)

// handleServiceError 把服务层错误映射为统一的HTTP响应
func handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidParam):
		response.BadRequest(c, err.Error(), err)
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error(), err)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error(), err)
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error(), err)
	default:
		response.InternalServerError(c, fallback, err)
	}
}
