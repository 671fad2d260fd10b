package services

import (
	"errors"
	"estate-management-service/config"
	"estate-management-service/models"
	"estate-management-service/utils"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TenantWithAccount 承租人及其门户账号标记
type TenantWithAccount struct {
	models.Tenant
	HasAccount bool `json:"has_account"`
}

// TenantDashboardStats 租户门户首页统计
type TenantDashboardStats struct {
	TenantName     string           `json:"tenant_name"`
	NextRentDate   *time.Time       `json:"next_rent_date"`
	NextRentAmount decimal.Decimal  `json:"next_rent_amount"`
	Balance        decimal.Decimal  `json:"balance"`
	OpenRequests   int64            `json:"open_requests"`
	RecentActivity []models.Payment `json:"recent_activity"`
}

// InterfaceTenantService 定义承租人服务接口
type InterfaceTenantService interface {
	CreateTenant(session *Session, tenant *models.Tenant) error
	GetTenants(session *Session) ([]TenantWithAccount, error)
	GetTenantByID(session *Session, id uint) (*models.Tenant, error)
	CreateTenantAccount(session *Session, tenantID uint, email string) (string, error)
	GetTenantDashboardStats(session *Session) (*TenantDashboardStats, error)
}

// TenantService 提供承租人相关的服务
type TenantService struct {
	DB           *gorm.DB
	Config       *config.Config
	Redis        InterfaceRedisService
	EmailService InterfaceEmailService
}

// NewTenantService 创建一个新的承租人服务
func NewTenantService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService, email InterfaceEmailService) InterfaceTenantService {
	return &TenantService{
		DB:           db,
		Config:       cfg,
		Redis:        redis,
		EmailService: email,
	}
}

// CreateTenant 创建承租人。承租人是全局记录，组织归属通过租约链路推导。
func (s *TenantService) CreateTenant(session *Session, tenant *models.Tenant) error {
	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.Tenant{}).Where("email = ?", tenant.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("承租人已存在")
	}

	if err := s.DB.Create(tenant).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewTenants)
	return nil
}

// GetTenants 获取本组织的承租人列表。
// 范围通过 租约->单元->物业 链路过滤，并附带是否已开通门户账号。
func (s *TenantService) GetTenants(session *Session) ([]TenantWithAccount, error) {
	var tenants []models.Tenant
	if err := s.DB.
		Where("id IN (?)", s.DB.Model(&models.Lease{}).
			Select("leases.tenant_id").
			Joins("JOIN units ON units.id = leases.unit_id").
			Joins("JOIN properties ON properties.id = units.property_id").
			Where("properties.organization_id = ?", session.OrganizationID)).
		Preload("Leases", "is_active = ?", true).
		Preload("Leases.Unit").
		Preload("Leases.Unit.Property").
		Order("created_at DESC").
		Find(&tenants).Error; err != nil {
		return nil, err
	}

	// 查询哪些承租人邮箱已有用户账号
	emails := make([]string, 0, len(tenants))
	for _, t := range tenants {
		emails = append(emails, t.Email)
	}

	existing := make(map[string]bool)
	if len(emails) > 0 {
		var users []models.User
		if err := s.DB.Select("email").Where("email IN ?", emails).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			existing[u.Email] = true
		}
	}

	result := make([]TenantWithAccount, 0, len(tenants))
	for _, t := range tenants {
		result = append(result, TenantWithAccount{
			Tenant:     t,
			HasAccount: existing[t.Email],
		})
	}
	return result, nil
}

// GetTenantByID 获取承租人详情，租约按起始日倒序
func (s *TenantService) GetTenantByID(session *Session, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.DB.
		Preload("Leases", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date DESC")
		}).
		Preload("Leases.Unit").
		Preload("Leases.Unit.Property").
		First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("承租人不存在")
		}
		return nil, err
	}

	return &tenant, nil
}

// CreateTenantAccount 为承租人开通门户账号。
// 生成的临时密码只返回这一次，之后不可再取回；欢迎邮件发送失败不影响开户。
func (s *TenantService) CreateTenantAccount(session *Session, tenantID uint, email string) (string, error) {
	// 验证用户邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", errors.New("该邮箱已有用户账号")
	}

	var tenant models.Tenant
	if err := s.DB.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("承租人不存在")
		}
		return "", err
	}

	tempPassword := utils.GenerateTempPassword(12)

	user := models.User{
		Email:          email,
		Password:       tempPassword, // BeforeCreate钩子负责哈希
		FirstName:      tenant.FirstName,
		LastName:       tenant.LastName,
		Role:           models.RoleTenant,
		OrganizationID: session.OrganizationID,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return "", err
	}

	// 发送欢迎邮件（尽力而为）
	if ok := s.EmailService.Send(email, "Welcome to your Tenant Portal",
		WelcomeEmailBody(tenant.FirstName, tempPassword)); !ok {
		config.Warning("发送欢迎邮件失败: %s", email)
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewTenants)
	return tempPassword, nil
}

// GetTenantDashboardStats 计算租户门户首页统计。
// 按会话邮箱定位承租人；下次租金日为下月1日，余额为活跃租约的PENDING账单合计。
func (s *TenantService) GetTenantDashboardStats(session *Session) (*TenantDashboardStats, error) {
	var tenant models.Tenant
	err := s.DB.Where("email = ?", session.Email).
		Preload("Leases", "is_active = ?", true).
		Preload("Leases.Unit").
		Preload("Leases.Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC").Limit(5)
		}).
		Preload("Leases.Invoices", "status = ?", models.InvoiceStatusPending).
		First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 没有对应承租人记录时返回空统计而不是错误
			return &TenantDashboardStats{
				NextRentAmount: decimal.Zero,
				Balance:        decimal.Zero,
				RecentActivity: []models.Payment{},
			}, nil
		}
		return nil, err
	}

	stats := &TenantDashboardStats{
		TenantName:     tenant.FullName(),
		NextRentAmount: decimal.Zero,
		Balance:        decimal.Zero,
		RecentActivity: []models.Payment{},
	}

	if len(tenant.Leases) > 0 {
		activeLease := tenant.Leases[0]

		// 下次租金日：下个自然月的1日
		now := time.Now()
		nextRentDate := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		stats.NextRentDate = &nextRentDate
		stats.NextRentAmount = activeLease.RentAmount

		for _, inv := range activeLease.Invoices {
			stats.Balance = stats.Balance.Add(inv.Amount)
		}
		stats.RecentActivity = activeLease.Payments
	}

	// 未完结的维修工单数
	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("tenant_id = ? AND status NOT IN ?", tenant.ID,
			[]string{models.RequestStatusCompleted, models.RequestStatusClosed}).
		Count(&stats.OpenRequests).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
