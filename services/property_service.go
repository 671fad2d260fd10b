package services

import (
	"errors"
	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InterfacePropertyService 定义物业服务接口
type InterfacePropertyService interface {
	CreateProperty(session *Session, property *models.Property) error
	GetProperties(session *Session) ([]models.Property, error)
	GetPropertyByID(session *Session, id uint) (*models.Property, error)
	DeleteProperty(session *Session, id uint) error
	CreateUnit(session *Session, propertyID uint, unit *models.Unit) error
}

// PropertyService 提供物业与单元相关的服务
type PropertyService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewPropertyService 创建一个新的物业服务
func NewPropertyService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfacePropertyService {
	return &PropertyService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// CreateProperty 创建新物业并打上组织标记
func (s *PropertyService) CreateProperty(session *Session, property *models.Property) error {
	property.OrganizationID = session.OrganizationID
	if err := s.DB.Create(property).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewProperties)
	return nil
}

// GetProperties 获取本组织全部物业（含单元），按创建时间倒序
func (s *PropertyService) GetProperties(session *Session) ([]models.Property, error) {
	var properties []models.Property
	if err := s.DB.Where("organization_id = ?", session.OrganizationID).
		Preload("Units").
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// GetPropertyByID 获取单个物业详情，跨组织访问与不存在同样返回"物业不存在"
func (s *PropertyService) GetPropertyByID(session *Session, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.Where("id = ? AND organization_id = ?", id, session.OrganizationID).
		Preload("Units").
		Preload("Units.Leases", "is_active = ?", true).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("物业不存在")
		}
		return nil, err
	}
	return &property, nil
}

// DeleteProperty 删除物业，先校验归属
func (s *PropertyService) DeleteProperty(session *Session, id uint) error {
	var property models.Property
	if err := s.DB.Where("id = ? AND organization_id = ?", id, session.OrganizationID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("物业不存在")
		}
		return err
	}

	if err := s.DB.Delete(&property).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewProperties)
	return nil
}

// CreateUnit 在物业下创建单元，先校验物业归属，默认状态VACANT
func (s *PropertyService) CreateUnit(session *Session, propertyID uint, unit *models.Unit) error {
	var property models.Property
	if err := s.DB.Where("id = ? AND organization_id = ?", propertyID, session.OrganizationID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("物业不存在")
		}
		return err
	}

	unit.PropertyID = propertyID
	if unit.Status == "" {
		unit.Status = models.UnitStatusVacant
	}
	if unit.MarketRent.IsNegative() {
		return errors.New("市场租金不能为负数")
	}

	if err := s.DB.Create(unit).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewProperties)
	return nil
}
