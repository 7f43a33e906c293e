package service

import (
	"sync"

	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	cronService     *CronService
	cronServiceOnce sync.Once
)

// CronService 定时任务服务
type CronService struct {
	cron   *cron.Cron
	logger *zap.SugaredLogger
}

// NewCronService 创建定时任务服务实例
func NewCronService() *CronService {
	cronServiceOnce.Do(func() {
		cronService = &CronService{
			cron:   cron.New(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return cronService
}

// Start 注册并启动全部定时任务
func (s *CronService) Start() error {
	// 每10分钟刷新热门标签缓存
	if _, err := s.cron.AddFunc("*/10 * * * *", func() {
		if err := NewTagService().RefreshTrendingCache(); err != nil {
			s.logger.Errorf("刷新热门标签缓存失败: %v", err)
		}
	}); err != nil {
		return err
	}

	// 每天凌晨3点清理过期的已读通知
	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := NewNotificationService().CleanupReadNotifications(); err != nil {
			s.logger.Errorf("清理已读通知失败: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("定时任务已启动")
	return nil
}

// Stop 停止定时任务，等待正在执行的任务完成
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("定时任务已停止")
}
