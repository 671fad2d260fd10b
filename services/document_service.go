package services

import (
	"context"
	"errors"
	"io"

	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// UploadDocumentInput 文件上传的输入
type UploadDocumentInput struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
	PropertyID  *uint
	TenantID    *uint
}

// InterfaceDocumentService 定义文档服务接口
type InterfaceDocumentService interface {
	UploadDocument(ctx context.Context, session *Session, input *UploadDocumentInput) (*models.Document, error)
	GetDocuments(ctx context.Context, session *Session) ([]models.Document, error)
	DeleteDocument(ctx context.Context, session *Session, documentID uint) error
}

// DocumentService 提供文档上传与管理服务
type DocumentService struct {
	DB      *gorm.DB
	Config  *config.Config
	Storage InterfaceStorageService
}

// NewDocumentService 创建一个新的文档服务
func NewDocumentService(db *gorm.DB, cfg *config.Config, storage InterfaceStorageService) InterfaceDocumentService {
	return &DocumentService{
		DB:      db,
		Config:  cfg,
		Storage: storage,
	}
}

// UploadDocument 上传文件到对象存储并登记记录。
// 关联物业时先校验其归属本组织。
func (s *DocumentService) UploadDocument(ctx context.Context, session *Session, input *UploadDocumentInput) (*models.Document, error) {
	if input.Name == "" {
		return nil, errors.New("文件名不能为空")
	}

	if input.PropertyID != nil {
		var count int64
		if err := s.DB.Model(&models.Property{}).
			Where("id = ? AND organization_id = ?", *input.PropertyID, session.OrganizationID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errors.New("物业不存在")
		}
	}

	uploaded, err := s.Storage.Upload(ctx, input.Name, input.ContentType, input.Size, input.Reader)
	if err != nil {
		return nil, err
	}

	document := &models.Document{
		Name:       uploaded.Name,
		URL:        uploaded.URL,
		Type:       input.ContentType,
		Size:       uploaded.Size,
		ObjectKey:  uploaded.ObjectKey,
		PropertyID: input.PropertyID,
		TenantID:   input.TenantID,
	}
	if err := s.DB.Create(document).Error; err != nil {
		// 入库失败时回收已上传的对象
		if derr := s.Storage.Delete(ctx, uploaded.ObjectKey); derr != nil {
			config.Warning("清理已上传对象失败: %v", derr)
		}
		return nil, err
	}

	return document, nil
}

// GetDocuments 获取文档列表。
// 租户角色只看到关联自己承租人记录的文档，其余角色看到组织物业范围和未关联物业的文档。
func (s *DocumentService) GetDocuments(ctx context.Context, session *Session) ([]models.Document, error) {
	var documents []models.Document

	if session.Role == models.RoleTenant {
		var tenant models.Tenant
		if err := s.DB.Where("email = ?", session.Email).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Document{}, nil
			}
			return nil, err
		}
		// 关联自己的文档，加上当前承租物业的公共文档
		leasedProperties := s.DB.Model(&models.Lease{}).
			Select("units.property_id").
			Joins("JOIN units ON units.id = leases.unit_id").
			Where("leases.tenant_id = ? AND leases.is_active = ?", tenant.ID, true)
		if err := s.DB.
			Where("tenant_id = ? OR property_id IN (?)", tenant.ID, leasedProperties).
			Order("created_at DESC").
			Find(&documents).Error; err != nil {
			return nil, err
		}
		return documents, nil
	}

	if err := s.DB.
		Where("property_id IN (?) OR property_id IS NULL",
			s.DB.Model(&models.Property{}).
				Select("id").
				Where("organization_id = ?", session.OrganizationID)).
		Preload("Property").
		Preload("Tenant").
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// DeleteDocument 删除文档记录及对象存储中的文件。
// 对象删除失败只记录，不阻塞记录删除。
func (s *DocumentService) DeleteDocument(ctx context.Context, session *Session, documentID uint) error {
	if session.Role == models.RoleTenant {
		return errors.New("没有操作权限")
	}

	var document models.Document
	if err := s.DB.First(&document, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("文档不存在")
		}
		return err
	}

	if document.PropertyID != nil {
		var count int64
		if err := s.DB.Model(&models.Property{}).
			Where("id = ? AND organization_id = ?", *document.PropertyID, session.OrganizationID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("文档不存在")
		}
	}

	if err := s.DB.Delete(&models.Document{}, document.ID).Error; err != nil {
		return err
	}

	if err := s.Storage.Delete(ctx, document.ObjectKey); err != nil {
		config.Warning("删除对象存储文件失败: %v", err)
	}

	return nil
}
