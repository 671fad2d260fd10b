package container

import (
	"sync"

	"estate-management-service/config"
	"estate-management-service/services"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService     services.InterfaceJWTService
	redisService   services.InterfaceRedisService
	emailService   services.InterfaceEmailService
	storageService services.InterfaceStorageService

	// 业务服务
	authService         services.InterfaceAuthService
	propertyService     services.InterfacePropertyService
	tenantService       services.InterfaceTenantService
	leaseService        services.InterfaceLeaseService
	financeService      services.InterfaceFinanceService
	billingService      services.InterfaceBillingService
	maintenanceService  services.InterfaceMaintenanceService
	vendorService       services.InterfaceVendorService
	taskService         services.InterfaceTaskService
	messageService      services.InterfaceMessageService
	notificationService services.InterfaceNotificationService
	documentService     services.InterfaceDocumentService
	auditService        services.InterfaceAuditService
	schedulerService    services.InterfaceSchedulerService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}
	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)
	c.emailService = services.NewEmailService(c.config)

	// 对象存储不可用时降级，文档接口会返回存储错误
	storage, err := services.NewStorageService(c.config)
	if err != nil {
		config.Warning("对象存储初始化失败: %v", err)
	}
	c.storageService = storage

	// 初始化业务服务
	c.authService = services.NewAuthService(c.db, c.config, c.jwtService)
	c.notificationService = services.NewNotificationService(c.db, c.config)
	c.auditService = services.NewAuditService(c.db, c.config)
	c.propertyService = services.NewPropertyService(c.db, c.config, c.redisService)
	c.tenantService = services.NewTenantService(c.db, c.config, c.redisService, c.emailService)
	c.leaseService = services.NewLeaseService(c.db, c.config, c.redisService)
	c.financeService = services.NewFinanceService(c.db, c.config, c.redisService, c.emailService, c.notificationService)
	c.billingService = services.NewBillingService(c.db, c.config, c.emailService, c.notificationService)
	c.maintenanceService = services.NewMaintenanceService(c.db, c.config, c.redisService, c.emailService, c.notificationService)
	c.vendorService = services.NewVendorService(c.db, c.config, c.redisService)
	c.taskService = services.NewTaskService(c.db, c.config, c.redisService)
	c.messageService = services.NewMessageService(c.db, c.config, c.redisService)
	c.documentService = services.NewDocumentService(c.db, c.config, c.storageService)
	c.schedulerService = services.NewSchedulerService(c.config, c.billingService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "email":
		return c.emailService
	case "storage":
		return c.storageService
	case "auth":
		return c.authService
	case "property":
		return c.propertyService
	case "tenant":
		return c.tenantService
	case "lease":
		return c.leaseService
	case "finance":
		return c.financeService
	case "billing":
		return c.billingService
	case "maintenance":
		return c.maintenanceService
	case "vendor":
		return c.vendorService
	case "task":
		return c.taskService
	case "message":
		return c.messageService
	case "notification":
		return c.notificationService
	case "document":
		return c.documentService
	case "audit":
		return c.auditService
	case "scheduler":
		return c.schedulerService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
