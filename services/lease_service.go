package services

import (
	"errors"
	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InterfaceLeaseService 定义租约服务接口
type InterfaceLeaseService interface {
	CreateLease(session *Session, lease *models.Lease) error
	GetLeases(session *Session) ([]models.Lease, error)
	EndLease(session *Session, leaseID uint) error
}

// LeaseService 提供租约相关的服务
type LeaseService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewLeaseService 创建一个新的租约服务
func NewLeaseService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceLeaseService {
	return &LeaseService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// CreateLease 创建租约。
// 先校验单元归属本组织，再校验单元为VACANT；
// 租约写入与单元置为OCCUPIED在同一事务内完成。
func (s *LeaseService) CreateLease(session *Session, lease *models.Lease) error {
	if lease.EndDate.Before(lease.StartDate) {
		return errors.New("租约结束日期不能早于起始日期")
	}
	if lease.RentAmount.IsNegative() || lease.DepositAmount.IsNegative() {
		return errors.New("金额不能为负数")
	}

	var unit models.Unit
	err := s.DB.
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("units.id = ? AND properties.organization_id = ?", lease.UnitID, session.OrganizationID).
		First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("单元不存在")
		}
		return err
	}

	if unit.Status != models.UnitStatusVacant {
		return errors.New("单元当前不可出租")
	}

	var tenant models.Tenant
	if err := s.DB.First(&tenant, lease.TenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("承租人不存在")
		}
		return err
	}

	lease.IsActive = true
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lease).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Unit{}).
			Where("id = ?", unit.ID).
			Update("status", models.UnitStatusOccupied).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewProperties, ViewTenants, ViewFinance)
	return nil
}

// GetLeases 获取本组织的租约列表
func (s *LeaseService) GetLeases(session *Session) ([]models.Lease, error) {
	var leases []models.Lease
	if err := s.DB.
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.organization_id = ?", session.OrganizationID).
		Preload("Tenant").
		Preload("Unit").
		Preload("Unit.Property").
		Order("leases.created_at DESC").
		Find(&leases).Error; err != nil {
		return nil, err
	}
	return leases, nil
}

// EndLease 结束租约。
// 租约置为非活跃与单元回到VACANT在同一事务内完成。
func (s *LeaseService) EndLease(session *Session, leaseID uint) error {
	var lease models.Lease
	err := s.DB.
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("leases.id = ? AND properties.organization_id = ?", leaseID, session.OrganizationID).
		First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("租约不存在")
		}
		return err
	}

	if !lease.IsActive {
		return errors.New("租约已结束")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Lease{}).
			Where("id = ?", lease.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Unit{}).
			Where("id = ?", lease.UnitID).
			Update("status", models.UnitStatusVacant).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewProperties, ViewTenants, ViewFinance)
	return nil
}
