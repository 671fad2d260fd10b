package services

import (
	"errors"

	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// CreateRequestInput 创建维修工单的输入
type CreateRequestInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	UnitID      uint   `json:"unit_id" binding:"required"`
	TenantEmail string `json:"tenant_email"` // 可选，按邮箱关联承租人
}

// InterfaceMaintenanceService 定义维修服务接口
type InterfaceMaintenanceService interface {
	CreateRequest(session *Session, input *CreateRequestInput) (*models.MaintenanceRequest, error)
	GetRequests(session *Session) ([]models.MaintenanceRequest, error)
	UpdateRequestStatus(session *Session, requestID uint, status string) error
	AssignVendor(session *Session, requestID uint, vendorID uint) error
	CreateSchedule(session *Session, schedule *models.MaintenanceSchedule) error
	GetSchedules(session *Session) ([]models.MaintenanceSchedule, error)
	DeleteSchedule(session *Session, scheduleID uint) error
}

// MaintenanceService 提供维修工单和预防性维护计划服务
type MaintenanceService struct {
	DB                  *gorm.DB
	Config              *config.Config
	Redis               InterfaceRedisService
	EmailService        InterfaceEmailService
	NotificationService InterfaceNotificationService
}

// NewMaintenanceService 创建一个新的维修服务
func NewMaintenanceService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService,
	email InterfaceEmailService, notification InterfaceNotificationService) InterfaceMaintenanceService {
	return &MaintenanceService{
		DB:                  db,
		Config:              cfg,
		Redis:               redis,
		EmailService:        email,
		NotificationService: notification,
	}
}

var validPriorities = map[string]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
	models.PriorityUrgent: true,
}

var validRequestStatuses = map[string]bool{
	models.RequestStatusSubmitted:  true,
	models.RequestStatusAssigned:   true,
	models.RequestStatusInProgress: true,
	models.RequestStatusCompleted:  true,
	models.RequestStatusClosed:     true,
}

// 允许处理工单的角色
var maintenanceHandlerRoles = map[string]bool{
	models.RoleSuperAdmin:       true,
	models.RolePropertyManager:  true,
	models.RoleMaintenanceStaff: true,
}

// CreateRequest 创建维修工单。
// 先校验单元归属本组织，物业ID从单元推导；
// 租户角色创建时强制关联自己的承租人记录。
func (s *MaintenanceService) CreateRequest(session *Session, input *CreateRequestInput) (*models.MaintenanceRequest, error) {
	if !validPriorities[input.Priority] {
		return nil, errors.New("无效的优先级")
	}

	var unit models.Unit
	err := s.DB.
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("units.id = ? AND properties.organization_id = ?", input.UnitID, session.OrganizationID).
		First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("单元不存在")
		}
		return nil, err
	}

	request := &models.MaintenanceRequest{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      models.RequestStatusSubmitted,
		UnitID:      unit.ID,
		PropertyID:  unit.PropertyID,
	}

	// 确定关联承租人：租户用自己的邮箱，管理员可选填
	tenantEmail := input.TenantEmail
	if session.Role == models.RoleTenant {
		tenantEmail = session.Email
	}
	if tenantEmail != "" {
		var tenant models.Tenant
		if err := s.DB.Where("email = ?", tenantEmail).First(&tenant).Error; err == nil {
			request.TenantID = &tenant.ID
		}
	}

	if err := s.DB.Create(request).Error; err != nil {
		return nil, err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewMaintenance)
	return request, nil
}

// GetRequests 获取维修工单列表。
// 租户角色只看到自己提交的工单，其余角色看到组织全部工单。
func (s *MaintenanceService) GetRequests(session *Session) ([]models.MaintenanceRequest, error) {
	query := s.DB.
		Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
		Where("properties.organization_id = ?", session.OrganizationID)

	if session.Role == models.RoleTenant {
		var tenant models.Tenant
		if err := s.DB.Where("email = ?", session.Email).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.MaintenanceRequest{}, nil
			}
			return nil, err
		}
		query = query.Where("maintenance_requests.tenant_id = ?", tenant.ID)
	}

	var requests []models.MaintenanceRequest
	if err := query.
		Preload("Unit").
		Preload("Property").
		Preload("Tenant").
		Preload("Vendor").
		Order("maintenance_requests.created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// requestInOrganization 校验工单归属本组织
func (s *MaintenanceService) requestInOrganization(requestID uint, organizationID uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	err := s.DB.
		Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
		Where("maintenance_requests.id = ? AND properties.organization_id = ?", requestID, organizationID).
		Preload("Tenant").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("维修工单不存在")
		}
		return nil, err
	}
	return &request, nil
}

// UpdateRequestStatus 更新工单状态。
// 状态变化后给提交工单的承租人发站内通知和邮件，失败不影响更新。
func (s *MaintenanceService) UpdateRequestStatus(session *Session, requestID uint, status string) error {
	if !validRequestStatuses[status] {
		return errors.New("无效的工单状态")
	}
	if !maintenanceHandlerRoles[session.Role] {
		return errors.New("没有操作权限")
	}

	request, err := s.requestInOrganization(requestID, session.OrganizationID)
	if err != nil {
		return err
	}

	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("id = ?", request.ID).
		Update("status", status).Error; err != nil {
		return err
	}

	if request.Tenant != nil {
		var user models.User
		if err := s.DB.Where("email = ?", request.Tenant.Email).First(&user).Error; err == nil {
			s.NotificationService.Create(user.ID, "Maintenance Update",
				"Your request \""+request.Title+"\" is now "+status+".",
				models.NotificationTypeInfo)
		}
		if ok := s.EmailService.Send(request.Tenant.Email, "Maintenance Request Update",
			MaintenanceUpdateBody(request.Title, status)); !ok {
			config.Warning("发送维修进度邮件失败: %s", request.Tenant.Email)
		}
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewMaintenance)
	return nil
}

// AssignVendor 将工单指派给供应商，状态随之进入ASSIGNED
func (s *MaintenanceService) AssignVendor(session *Session, requestID uint, vendorID uint) error {
	if !maintenanceHandlerRoles[session.Role] {
		return errors.New("没有操作权限")
	}

	request, err := s.requestInOrganization(requestID, session.OrganizationID)
	if err != nil {
		return err
	}

	var vendor models.Vendor
	err = s.DB.Where("id = ? AND organization_id = ?", vendorID, session.OrganizationID).
		First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("供应商不存在")
		}
		return err
	}

	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"vendor_id": vendor.ID,
			"status":    models.RequestStatusAssigned,
		}).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewMaintenance, ViewVendors)
	return nil
}

var validFrequencies = map[string]bool{
	models.FrequencyDaily:     true,
	models.FrequencyWeekly:    true,
	models.FrequencyMonthly:   true,
	models.FrequencyQuarterly: true,
	models.FrequencyYearly:    true,
}

// CreateSchedule 创建预防性维护计划，首次NextRun取起始日
func (s *MaintenanceService) CreateSchedule(session *Session, schedule *models.MaintenanceSchedule) error {
	if !validFrequencies[schedule.Frequency] {
		return errors.New("无效的维护频率")
	}

	var count int64
	if err := s.DB.Model(&models.Property{}).
		Where("id = ? AND organization_id = ?", schedule.PropertyID, session.OrganizationID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("物业不存在")
	}

	if schedule.NextRun.IsZero() {
		schedule.NextRun = schedule.StartDate
	}

	if err := s.DB.Create(schedule).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewMaintenance)
	return nil
}

// GetSchedules 获取本组织的维护计划，按下次执行时间升序
func (s *MaintenanceService) GetSchedules(session *Session) ([]models.MaintenanceSchedule, error) {
	var schedules []models.MaintenanceSchedule
	if err := s.DB.
		Joins("JOIN properties ON properties.id = maintenance_schedules.property_id").
		Where("properties.organization_id = ?", session.OrganizationID).
		Preload("Property").
		Preload("Assignee").
		Order("maintenance_schedules.next_run ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// DeleteSchedule 删除维护计划
func (s *MaintenanceService) DeleteSchedule(session *Session, scheduleID uint) error {
	var schedule models.MaintenanceSchedule
	err := s.DB.
		Joins("JOIN properties ON properties.id = maintenance_schedules.property_id").
		Where("maintenance_schedules.id = ? AND properties.organization_id = ?",
			scheduleID, session.OrganizationID).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("维护计划不存在")
		}
		return err
	}

	if err := s.DB.Delete(&models.MaintenanceSchedule{}, schedule.ID).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewMaintenance)
	return nil
}
