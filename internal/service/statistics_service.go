package service

import (
	"errors"
	"sync"
	"time"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	statisticsService     *StatisticsService
	statisticsServiceOnce sync.Once
)

// StatisticsService 阅读统计服务
type StatisticsService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	// now 可注入的时钟，便于测试日界
	now func() time.Time
}

// NewStatisticsService 创建阅读统计服务实例
func NewStatisticsService() *StatisticsService {
	statisticsServiceOnce.Do(func() {
		statisticsService = &StatisticsService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
			now:    time.Now,
		}
	})
	return statisticsService
}

// utcDayStart 计算某时刻所在UTC自然日的起点
// 日桶按UTC日历日截断，跨月跨年不会误判同日
func utcDayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// RecordRead 记录一次文章阅读
// 单条条件UPDATE累加当日计数，未命中当日记录时插入新行
func (s *StatisticsService) RecordRead(slug, author string) error {
	now := s.now()
	dayStart := utcDayStart(now)

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Statistics{}).
			Where("article_slug = ? AND author = ? AND updated_at >= ?", slug, author, dayStart).
			UpdateColumn("read_count", gorm.Expr("read_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			return nil
		}

		// 当日尚无记录，开一个新的日桶
		row := &model.Statistics{
			Author:      author,
			ArticleSlug: slug,
			ReadCount:   1,
		}
		return tx.Create(row).Error
	})
}

// GetReadStatisticsByUser 按用户ID查询阅读统计
// 作者用户名以数据库当前值为准，改名后令牌未刷新也能查到
func (s *StatisticsService) GetReadStatisticsByUser(userID uint, slug string, year, month int) (*dto.StatisticsResponse, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("用户不存在")
		}
		return nil, err
	}
	return s.GetReadStatistics(user.Username, slug, year, month)
}

// GetReadStatistics 查询作者某篇文章的阅读统计
// 指定month时必须同时指定year；两者都未指定时返回累计总数
func (s *StatisticsService) GetReadStatistics(author, slug string, year, month int) (*dto.StatisticsResponse, error) {
	if month != 0 && year == 0 {
		return nil, invalidParam("按月份查询时必须指定年份")
	}

	var rows []model.Statistics
	if err := s.db.Where("article_slug = ? AND author = ?", slug, author).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var total int64
	for _, row := range rows {
		if year != 0 {
			u := row.UpdatedAt.UTC()
			if u.Year() != year {
				continue
			}
			if month != 0 && int(u.Month()) != month {
				continue
			}
		}
		total += int64(row.ReadCount)
	}

	return &dto.StatisticsResponse{
		ArticleSlug: slug,
		Year:        year,
		Month:       month,
		ReadCount:   total,
	}, nil
}
