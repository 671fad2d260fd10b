package services

import (
	"errors"
	"estate-management-service/config"
	"estate-management-service/models"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialStats 财务概览统计
type FinancialStats struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetIncome       decimal.Decimal `json:"net_income"`
	PendingInvoices int64           `json:"pending_invoices"`
}

// MonthlyChartPoint 近6个月收支曲线上的一个点
type MonthlyChartPoint struct {
	Month    string          `json:"month"` // 格式 YYYY-MM
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Transaction 近期交易，收款与支出合并后的统一视图
type Transaction struct {
	ID          uint            `json:"id"`
	Type        string          `json:"type"` // PAYMENT 或 EXPENSE
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// 交易类型
const (
	TransactionTypePayment = "PAYMENT"
	TransactionTypeExpense = "EXPENSE"
)

// InterfaceFinanceService 定义财务服务接口
type InterfaceFinanceService interface {
	RecordPayment(session *Session, payment *models.Payment) error
	GetPayments(session *Session) ([]models.Payment, error)
	CreateExpense(session *Session, expense *models.Expense) error
	GetExpenses(session *Session) ([]models.Expense, error)
	GetInvoices(session *Session) ([]models.Invoice, error)
	GetFinancialStats(session *Session) (*FinancialStats, error)
	GetMonthlyChartData(session *Session) ([]MonthlyChartPoint, error)
	GetRecentTransactions(session *Session) ([]Transaction, error)
}

// FinanceService 提供财务相关的服务
type FinanceService struct {
	DB                  *gorm.DB
	Config              *config.Config
	Redis               InterfaceRedisService
	EmailService        InterfaceEmailService
	NotificationService InterfaceNotificationService
}

// NewFinanceService 创建一个新的财务服务
func NewFinanceService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService,
	email InterfaceEmailService, notification InterfaceNotificationService) InterfaceFinanceService {
	return &FinanceService{
		DB:                  db,
		Config:              cfg,
		Redis:               redis,
		EmailService:        email,
		NotificationService: notification,
	}
}

// leaseInOrganization 校验租约经 单元->物业 链路归属本组织
func (s *FinanceService) leaseInOrganization(leaseID uint, organizationID uint) (*models.Lease, error) {
	var lease models.Lease
	err := s.DB.
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("leases.id = ? AND properties.organization_id = ?", leaseID, organizationID).
		Preload("Tenant").
		First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("租约不存在")
		}
		return nil, err
	}
	return &lease, nil
}

// RecordPayment 录入收款。
// 收款成功后给承租人账号发站内通知和收据邮件，这两步失败不影响收款本身。
func (s *FinanceService) RecordPayment(session *Session, payment *models.Payment) error {
	if payment.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("收款金额必须大于0")
	}

	lease, err := s.leaseInOrganization(payment.LeaseID, session.OrganizationID)
	if err != nil {
		return err
	}

	if payment.Status == "" {
		payment.Status = models.PaymentStatusPaid
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}

	if err := s.DB.Create(payment).Error; err != nil {
		return err
	}

	// 尽力而为的通知和收据
	if lease.Tenant != nil {
		var user models.User
		if err := s.DB.Where("email = ?", lease.Tenant.Email).First(&user).Error; err == nil {
			s.NotificationService.Create(user.ID, "Payment Received",
				"Your payment of $"+payment.Amount.StringFixed(2)+" has been recorded.",
				models.NotificationTypeSuccess)
		}
		if ok := s.EmailService.Send(lease.Tenant.Email, "Payment Receipt",
			PaymentReceiptBody(payment.Amount.StringFixed(2), payment.Date, payment.Method)); !ok {
			config.Warning("发送收款收据邮件失败: %s", lease.Tenant.Email)
		}
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewFinance)
	return nil
}

// GetPayments 获取本组织的收款记录
func (s *FinanceService) GetPayments(session *Session) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.
		Joins("JOIN leases ON leases.id = payments.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.organization_id = ?", session.OrganizationID).
		Preload("Lease").
		Preload("Lease.Tenant").
		Preload("Lease.Unit").
		Order("payments.date DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// CreateExpense 录入支出，先校验物业归属本组织
func (s *FinanceService) CreateExpense(session *Session, expense *models.Expense) error {
	if expense.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("支出金额必须大于0")
	}

	var count int64
	if err := s.DB.Model(&models.Property{}).
		Where("id = ? AND organization_id = ?", expense.PropertyID, session.OrganizationID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("物业不存在")
	}

	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	if err := s.DB.Create(expense).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewFinance)
	return nil
}

// GetExpenses 获取本组织的支出记录
func (s *FinanceService) GetExpenses(session *Session) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.DB.
		Joins("JOIN properties ON properties.id = expenses.property_id").
		Where("properties.organization_id = ?", session.OrganizationID).
		Preload("Property").
		Order("expenses.date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetInvoices 获取本组织的账单列表
func (s *FinanceService) GetInvoices(session *Session) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.DB.
		Joins("JOIN leases ON leases.id = invoices.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.organization_id = ?", session.OrganizationID).
		Preload("Lease").
		Preload("Lease.Tenant").
		Preload("Lease.Unit").
		Order("invoices.due_date DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// GetFinancialStats 计算当月财务概览。
// 收入取当月PAID收款合计，支出取当月支出合计，净收入恒等于二者之差。
func (s *FinanceService) GetFinancialStats(session *Session) (*FinancialStats, error) {
	stats := &FinancialStats{
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	// 统计窗口为当前自然月
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var payments []models.Payment
	if err := s.DB.
		Joins("JOIN leases ON leases.id = payments.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.organization_id = ? AND payments.status = ? AND payments.date >= ? AND payments.date < ?",
			session.OrganizationID, models.PaymentStatusPaid, monthStart, monthEnd).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	for _, p := range payments {
		stats.TotalRevenue = stats.TotalRevenue.Add(p.Amount)
	}

	var expenses []models.Expense
	if err := s.DB.
		Joins("JOIN properties ON properties.id = expenses.property_id").
		Where("properties.organization_id = ? AND expenses.date >= ? AND expenses.date < ?",
			session.OrganizationID, monthStart, monthEnd).
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	for _, e := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(e.Amount)
	}

	stats.NetIncome = stats.TotalRevenue.Sub(stats.TotalExpenses)

	if err := s.DB.Model(&models.Invoice{}).
		Joins("JOIN leases ON leases.id = invoices.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.organization_id = ? AND invoices.status = ?",
			session.OrganizationID, models.InvoiceStatusPending).
		Count(&stats.PendingInvoices).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GetMonthlyChartData 计算近6个月的收支曲线，按月从旧到新排列
func (s *FinanceService) GetMonthlyChartData(session *Session) ([]MonthlyChartPoint, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

	var payments []models.Payment
	if err := s.DB.
		Joins("JOIN leases ON leases.id = payments.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.organization_id = ? AND payments.status = ? AND payments.date >= ?",
			session.OrganizationID, models.PaymentStatusPaid, start).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := s.DB.
		Joins("JOIN properties ON properties.id = expenses.property_id").
		Where("properties.organization_id = ? AND expenses.date >= ?",
			session.OrganizationID, start).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	// 预置6个月的空点，保证没有数据的月份也出现在曲线上
	points := make([]MonthlyChartPoint, 0, 6)
	index := make(map[string]int, 6)
	for i := 0; i < 6; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		index[month] = i
		points = append(points, MonthlyChartPoint{
			Month:    month,
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
		})
	}

	for _, p := range payments {
		if i, ok := index[p.Date.Format("2006-01")]; ok {
			points[i].Revenue = points[i].Revenue.Add(p.Amount)
		}
	}
	for _, e := range expenses {
		if i, ok := index[e.Date.Format("2006-01")]; ok {
			points[i].Expenses = points[i].Expenses.Add(e.Amount)
		}
	}

	return points, nil
}

// GetRecentTransactions 获取近期交易：最近5笔收款与最近5笔支出合并后取前10条
func (s *FinanceService) GetRecentTransactions(session *Session) ([]Transaction, error) {
	var payments []models.Payment
	if err := s.DB.
		Joins("JOIN leases ON leases.id = payments.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.organization_id = ?", session.OrganizationID).
		Preload("Lease.Tenant").
		Order("payments.date DESC").
		Limit(5).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := s.DB.
		Joins("JOIN properties ON properties.id = expenses.property_id").
		Where("properties.organization_id = ?", session.OrganizationID).
		Order("expenses.date DESC").
		Limit(5).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(payments)+len(expenses))
	for _, p := range payments {
		desc := "Rent payment"
		if p.Lease != nil && p.Lease.Tenant != nil {
			desc = "Rent payment from " + p.Lease.Tenant.FullName()
		}
		transactions = append(transactions, Transaction{
			ID:          p.ID,
			Type:        TransactionTypePayment,
			Amount:      p.Amount,
			Date:        p.Date,
			Description: desc,
		})
	}
	for _, e := range expenses {
		desc := e.Category
		if e.Description != "" {
			desc = e.Category + ": " + e.Description
		}
		transactions = append(transactions, Transaction{
			ID:          e.ID,
			Type:        TransactionTypeExpense,
			Amount:      e.Amount,
			Date:        e.Date,
			Description: desc,
		})
	}

	// 按日期倒序后截取前10条
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	if len(transactions) > 10 {
		transactions = transactions[:10]
	}

	return transactions, nil
}
