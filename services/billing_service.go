package services

import (
	"strings"
	"sync"
	"time"

	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InvoiceRunResult 月度账单生成结果
type InvoiceRunResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ReminderRunResult 租金提醒发送结果
type ReminderRunResult struct {
	UpcomingSent int      `json:"upcoming_sent"`
	OverdueSent  int      `json:"overdue_sent"`
	Errors       []string `json:"errors"`
}

// InterfaceBillingService 定义计费定时任务服务接口
type InterfaceBillingService interface {
	GenerateMonthlyInvoices(now time.Time) (*InvoiceRunResult, error)
	SendRentReminders(now time.Time) (*ReminderRunResult, error)
}

// BillingService 提供月度账单生成和租金提醒两个定时任务。
// 两个任务都跨全部组织执行，单条失败不中断整批。
type BillingService struct {
	DB                  *gorm.DB
	Config              *config.Config
	EmailService        InterfaceEmailService
	NotificationService InterfaceNotificationService
}

// NewBillingService 创建一个新的计费服务
func NewBillingService(db *gorm.DB, cfg *config.Config,
	email InterfaceEmailService, notification InterfaceNotificationService) InterfaceBillingService {
	return &BillingService{
		DB:                  db,
		Config:              cfg,
		EmailService:        email,
		NotificationService: notification,
	}
}

// isDuplicateKeyError 识别(lease_id, period)唯一索引冲突。
// MySQL报1062 Duplicate entry，sqlite报UNIQUE constraint failed。
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// GenerateMonthlyInvoices 为所有活跃租约生成当月租金账单。
// 账期为now所在月(YYYY-MM)，到期日为下月1日；同一租约同一账期
// 已有账单则跳过，唯一索引冲突同样按跳过计数。
func (s *BillingService) GenerateMonthlyInvoices(now time.Time) (*InvoiceRunResult, error) {
	period := now.Format("2006-01")
	dueDate := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	monthName := now.Format("January 2006")

	var leases []models.Lease
	if err := s.DB.Where("is_active = ?", true).Find(&leases).Error; err != nil {
		return nil, err
	}

	result := &InvoiceRunResult{Errors: []string{}}
	for _, lease := range leases {
		var count int64
		if err := s.DB.Model(&models.Invoice{}).
			Where("lease_id = ? AND period = ?", lease.ID, period).
			Count(&count).Error; err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if count > 0 {
			result.Skipped++
			continue
		}

		invoice := models.Invoice{
			LeaseID:     lease.ID,
			Period:      period,
			Amount:      lease.RentAmount,
			DueDate:     dueDate,
			Status:      models.InvoiceStatusPending,
			Description: "Rent for " + monthName,
		}
		if err := s.DB.Create(&invoice).Error; err != nil {
			if isDuplicateKeyError(err) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Created++
	}

	config.Info("月度账单生成完成: 账期=%s 新建=%d 跳过=%d 错误=%d",
		period, result.Created, result.Skipped, len(result.Errors))
	return result, nil
}

// SendRentReminders 发送租金提醒。
// 3天后到期的PENDING账单发即将到期提醒，昨天到期的发逾期提醒；
// 各账单的提醒邮件并发发送，单条失败只记录，不影响其他账单，
// 计数只认邮件送达。
func (s *BillingService) SendRentReminders(now time.Time) (*ReminderRunResult, error) {
	result := &ReminderRunResult{Errors: []string{}}

	upcoming, err := s.invoicesDueOn(now.AddDate(0, 0, 3))
	if err != nil {
		return nil, err
	}
	overdue, err := s.invoicesDueOn(now.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	remind := func(inv models.Invoice, isOverdue bool) {
		if inv.Lease == nil || inv.Lease.Tenant == nil {
			result.Errors = append(result.Errors, "账单缺少租约或承租人信息")
			return
		}
		s.notifyPortalUser(inv, isOverdue)

		wg.Add(1)
		go func() {
			defer wg.Done()
			tenant := inv.Lease.Tenant
			subject := "Rent Due Soon"
			if isOverdue {
				subject = "Rent Overdue"
			}
			ok := s.EmailService.Send(tenant.Email, subject,
				RentReminderBody(inv.Amount.StringFixed(2), inv.DueDate, isOverdue))
			mu.Lock()
			defer mu.Unlock()
			if !ok {
				result.Errors = append(result.Errors, "发送提醒邮件失败: "+tenant.Email)
				return
			}
			if isOverdue {
				result.OverdueSent++
			} else {
				result.UpcomingSent++
			}
		}()
	}

	for _, inv := range upcoming {
		remind(inv, false)
	}
	for _, inv := range overdue {
		remind(inv, true)
	}
	wg.Wait()

	config.Info("租金提醒发送完成: 即将到期=%d 逾期=%d 错误=%d",
		result.UpcomingSent, result.OverdueSent, len(result.Errors))
	return result, nil
}

// invoicesDueOn 按到期日(自然日)查询PENDING账单
func (s *BillingService) invoicesDueOn(day time.Time) ([]models.Invoice, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var invoices []models.Invoice
	if err := s.DB.
		Where("status = ? AND due_date >= ? AND due_date < ?",
			models.InvoiceStatusPending, start, end).
		Preload("Lease").
		Preload("Lease.Tenant").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// notifyPortalUser 给开通了门户账号的承租人发站内通知，没有账号则跳过
func (s *BillingService) notifyPortalUser(inv models.Invoice, overdue bool) {
	tenant := inv.Lease.Tenant

	var user models.User
	if err := s.DB.Where("email = ?", tenant.Email).First(&user).Error; err != nil {
		return
	}

	title := "Upcoming Rent"
	message := "Your rent of $" + inv.Amount.StringFixed(2) + " is due on " +
		inv.DueDate.Format("Jan 2, 2006") + "."
	notifType := models.NotificationTypeInfo
	if overdue {
		title = "Rent Overdue"
		message = "Your rent of $" + inv.Amount.StringFixed(2) + " was due on " +
			inv.DueDate.Format("Jan 2, 2006") + " and is now overdue."
		notifType = models.NotificationTypeWarning
	}
	s.NotificationService.Create(user.ID, title, message, notifType)
}
