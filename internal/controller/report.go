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

// ReportApi 举报控制器
type ReportApi struct {
	logger        *zap.SugaredLogger
	reportService *service.ReportService
}

// NewReportApi 创建举报控制器实例
func NewReportApi() *ReportApi {
	return &ReportApi{
		logger:        logger.GetSugaredLogger(),
		reportService: service.NewReportService(),
	}
}

// Create 举报文章
func (api *ReportApi) Create(c *gin.Context) {
	var req dto.ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	report, err := api.reportService.Create(middleware.GetUserID(c), c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err, "举报失败")
		return
	}

	response.Created(c, "举报已提交", gin.H{
		"id":          report.ID,
		"report_type": report.ReportType,
	})
}

// ListByArticle 管理员查看文章的举报记录
func (api *ReportApi) ListByArticle(c *gin.Context) {
	reports, err := api.reportService.ListByArticle(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err, "获取举报记录失败")
		return
	}

	list := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		list = append(list, gin.H{
			"id":          r.ID,
			"report_type": r.ReportType,
			"context":     r.Context,
			"reporter":    r.User.Username,
			"created_at":  r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	response.Success(c, "获取成功", gin.H{
		"total": len(list),
		"list":  list,
	})
}
