package services

import (
	"errors"

	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InterfaceVendorService 定义供应商服务接口
type InterfaceVendorService interface {
	CreateVendor(session *Session, vendor *models.Vendor) error
	GetVendors(session *Session) ([]models.Vendor, error)
	UpdateVendor(session *Session, vendorID uint, input *models.Vendor) error
	DeleteVendor(session *Session, vendorID uint) error
}

// VendorService 提供供应商目录服务
type VendorService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewVendorService 创建一个新的供应商服务
func NewVendorService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceVendorService {
	return &VendorService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// CreateVendor 创建供应商，组织ID取自会话
func (s *VendorService) CreateVendor(session *Session, vendor *models.Vendor) error {
	if vendor.Name == "" || vendor.ServiceType == "" {
		return errors.New("供应商名称和服务类型不能为空")
	}

	vendor.OrganizationID = session.OrganizationID
	if err := s.DB.Create(vendor).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewVendors)
	return nil
}

// GetVendors 获取本组织的供应商列表，附带指派给各供应商的工单
func (s *VendorService) GetVendors(session *Session) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := s.DB.
		Where("organization_id = ?", session.OrganizationID).
		Preload("WorkOrders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// UpdateVendor 更新本组织供应商的资料
func (s *VendorService) UpdateVendor(session *Session, vendorID uint, input *models.Vendor) error {
	if input.Name == "" || input.ServiceType == "" {
		return errors.New("供应商名称和服务类型不能为空")
	}

	var vendor models.Vendor
	err := s.DB.Where("id = ? AND organization_id = ?", vendorID, session.OrganizationID).
		First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("供应商不存在")
		}
		return err
	}

	if err := s.DB.Model(&models.Vendor{}).
		Where("id = ?", vendor.ID).
		Updates(map[string]interface{}{
			"name":         input.Name,
			"service_type": input.ServiceType,
			"email":        input.Email,
			"phone":        input.Phone,
		}).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewVendors)
	return nil
}

// DeleteVendor 删除供应商，仍有未完结工单时不允许删除
func (s *VendorService) DeleteVendor(session *Session, vendorID uint) error {
	var vendor models.Vendor
	err := s.DB.Where("id = ? AND organization_id = ?", vendorID, session.OrganizationID).
		First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("供应商不存在")
		}
		return err
	}

	var open int64
	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("vendor_id = ? AND status NOT IN ?", vendor.ID,
			[]string{models.RequestStatusCompleted, models.RequestStatusClosed}).
		Count(&open).Error; err != nil {
		return err
	}
	if open > 0 {
		return errors.New("供应商仍有未完结工单")
	}

	if err := s.DB.Delete(&models.Vendor{}, vendor.ID).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewVendors)
	return nil
}
