package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	reportService     *ReportService
	reportServiceOnce sync.Once
)

// ReportService 文章举报服务
type ReportService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewReportService 创建举报服务实例
func NewReportService() *ReportService {
	reportServiceOnce.Do(func() {
		reportService = &ReportService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return reportService
}

// Create 举报文章
// 类型为other时必须附带说明
func (s *ReportService) Create(userID uint, slug string, req *dto.ReportCreateRequest) (*model.Report, error) {
	if req.ReportType == model.ReportTypeOther && strings.TrimSpace(req.Context) == "" {
		return nil, invalidParam("举报类型为other时必须填写说明")
	}

	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	report := &model.Report{
		ReportType: req.ReportType,
		UserID:     userID,
		ArticleID:  article.ID,
		Context:    req.Context,
	}
	if err := s.db.Create(report).Error; err != nil {
		return nil, err
	}

	s.logger.Infof("用户 %d 举报文章 %s 类型=%s", userID, slug, req.ReportType)
	return report, nil
}

// ListByArticle 管理员查看某文章的举报记录
func (s *ReportService) ListByArticle(slug string) ([]model.Report, error) {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	var reports []model.Report
	err := s.db.Preload("User").
		Where("article_id = ?", article.ID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}
