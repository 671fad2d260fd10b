package services

import (
	"time"

	"estate-management-service/config"

	"github.com/robfig/cron/v3"
)

// InterfaceSchedulerService 定义定时任务调度接口
type InterfaceSchedulerService interface {
	Start() error
	Stop()
}

// SchedulerService 用进程内cron驱动月度账单生成和租金提醒。
// 与HTTP定时任务入口共用BillingService，部署方可二选一。
type SchedulerService struct {
	Config         *config.Config
	BillingService InterfaceBillingService
	cron           *cron.Cron
}

// NewSchedulerService 创建一个新的调度服务
func NewSchedulerService(cfg *config.Config, billing InterfaceBillingService) InterfaceSchedulerService {
	return &SchedulerService{
		Config:         cfg,
		BillingService: billing,
		cron:           cron.New(),
	}
}

// Start 注册并启动定时任务
func (s *SchedulerService) Start() error {
	if _, err := s.cron.AddFunc(s.Config.InvoiceCronSpec, func() {
		if _, err := s.BillingService.GenerateMonthlyInvoices(time.Now()); err != nil {
			config.Error("月度账单定时任务失败: %v", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(s.Config.ReminderCronSpec, func() {
		if _, err := s.BillingService.SendRentReminders(time.Now()); err != nil {
			config.Error("租金提醒定时任务失败: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	config.Info("定时任务调度已启动: 账单=%s 提醒=%s",
		s.Config.InvoiceCronSpec, s.Config.ReminderCronSpec)
	return nil
}

// Stop 停止调度并等待在跑任务结束
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
