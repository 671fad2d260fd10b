package services

import (
	"errors"
	"estate-management-service/config"
	"estate-management-service/models"
	"estate-management-service/utils"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// InterfaceAuthService 定义注册登录服务接口
type InterfaceAuthService interface {
	Register(email, password, firstName, lastName, organizationName string) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
	UpdateProfile(session *Session, firstName, lastName, phone string) error
	UpdateOrganization(session *Session, name string) error
}

// AuthService 提供注册和登录相关的服务
type AuthService struct {
	DB         *gorm.DB
	Config     *config.Config
	JWTService InterfaceJWTService
}

// NewAuthService 创建一个新的认证服务
func NewAuthService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService) InterfaceAuthService {
	return &AuthService{
		DB:         db,
		Config:     cfg,
		JWTService: jwtService,
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 由组织名生成唯一标识
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Register 注册新组织及其超级管理员，两者在同一事务中创建
func (s *AuthService) Register(email, password, firstName, lastName, organizationName string) (*models.User, error) {
	if len(password) < 8 {
		return nil, errors.New("密码长度不能少于8位")
	}

	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("该邮箱已被注册")
	}

	var user models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		organization := models.Organization{
			Name: organizationName,
			Slug: Slugify(organizationName),
		}
		if err := tx.Create(&organization).Error; err != nil {
			return err
		}

		user = models.User{
			Email:          email,
			Password:       password, // BeforeCreate钩子负责哈希
			FirstName:      firstName,
			LastName:       lastName,
			Role:           models.RoleSuperAdmin,
			OrganizationID: organization.ID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login 验证邮箱密码并签发JWT令牌
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.New("用户名或密码错误")
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", errors.New("用户名或密码错误")
	}

	token, err := s.JWTService.GenerateToken(user.ID, user.OrganizationID, user.Role, user.Email)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// UpdateProfile 更新当前用户的个人信息
func (s *AuthService) UpdateProfile(session *Session, firstName, lastName, phone string) error {
	updates := map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
	}
	if phone != "" {
		updates["phone"] = phone
	}

	return s.DB.Model(&models.User{}).
		Where("id = ?", session.UserID).
		Updates(updates).Error
}

// UpdateOrganization 更新当前组织名称，仅限超级管理员和物业经理
func (s *AuthService) UpdateOrganization(session *Session, name string) error {
	if session.Role != models.RoleSuperAdmin && session.Role != models.RolePropertyManager {
		return errors.New("权限不足")
	}

	return s.DB.Model(&models.Organization{}).
		Where("id = ?", session.OrganizationID).
		Update("name", name).Error
}
