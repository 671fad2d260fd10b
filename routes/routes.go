package routes

import (
	"estate-management-service/config"
	"estate-management-service/controllers"
	_ "estate-management-service/docs"
	"estate-management-service/middleware"
	"estate-management-service/models"
	"estate-management-service/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *container.ServiceContainer) {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer, cfg)
	return r, serviceContainer
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
	cfg *config.Config,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册定时任务路由
	registerCronRoutes(api, container, cfg)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)

	// 认证路由
	api.POST("/auth/register", controllers.HandleAuthFunc(container, "register"))
	api.POST("/auth/login", controllers.HandleAuthFunc(container, "login"))
}

// registerCronRoutes 注册定时任务路由，由外部调度器持CRON_SECRET调用
func registerCronRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	cfg *config.Config,
) {
	cron := api.Group("/cron")
	cron.Use(middleware.CronAuth(cfg))

	cron.GET("/invoices", controllers.HandleBillingFunc(container, "generateInvoices"))
	cron.GET("/reminders", controllers.HandleBillingFunc(container, "sendReminders"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authenticate())

	// 管理角色：除租户外的全部角色
	staffRoles := middleware.RequireRoles(
		models.RoleSuperAdmin,
		models.RolePropertyManager,
		models.RoleMaintenanceStaff,
		models.RoleFinanceManager,
	)
	// 财务角色
	financeRoles := middleware.RequireRoles(
		models.RoleSuperAdmin,
		models.RolePropertyManager,
		models.RoleFinanceManager,
	)
	// 组织管理角色
	adminRoles := middleware.RequireRoles(
		models.RoleSuperAdmin,
		models.RolePropertyManager,
	)
	// 维修处理角色
	maintenanceRoles := middleware.RequireRoles(
		models.RoleSuperAdmin,
		models.RolePropertyManager,
		models.RoleMaintenanceStaff,
	)

	// 个人资料与组织
	auth.PUT("/profile", controllers.HandleAuthFunc(container, "updateProfile"))
	auth.PUT("/organization", adminRoles, controllers.HandleAuthFunc(container, "updateOrganization"))

	// 物业与单元路由
	auth.Group("/properties").GET("", staffRoles, controllers.HandlePropertyFunc(container, "getProperties"))
	auth.Group("/properties").GET("/:id", staffRoles, controllers.HandlePropertyFunc(container, "getProperty"))
	auth.Group("/properties").POST("", adminRoles, controllers.HandlePropertyFunc(container, "createProperty"))
	auth.Group("/properties").DELETE("/:id", adminRoles, controllers.HandlePropertyFunc(container, "deleteProperty"))
	auth.Group("/properties").POST("/:id/units", adminRoles, controllers.HandlePropertyFunc(container, "createUnit"))

	// 承租人路由
	auth.Group("/tenants").GET("", staffRoles, controllers.HandleTenantFunc(container, "getTenants"))
	auth.Group("/tenants").GET("/:id", staffRoles, controllers.HandleTenantFunc(container, "getTenant"))
	auth.Group("/tenants").POST("", staffRoles, controllers.HandleTenantFunc(container, "createTenant"))
	auth.Group("/tenants").POST("/:id/account", adminRoles, controllers.HandleTenantFunc(container, "createTenantAccount"))

	// 租户门户
	auth.GET("/portal/dashboard", controllers.HandleTenantFunc(container, "getDashboard"))

	// 租约路由
	auth.Group("/leases").GET("", staffRoles, controllers.HandleLeaseFunc(container, "getLeases"))
	auth.Group("/leases").POST("", adminRoles, controllers.HandleLeaseFunc(container, "createLease"))
	auth.Group("/leases").POST("/:id/end", adminRoles, controllers.HandleLeaseFunc(container, "endLease"))

	// 财务路由
	auth.Group("/payments").GET("", financeRoles, controllers.HandleFinanceFunc(container, "getPayments"))
	auth.Group("/payments").POST("", financeRoles, controllers.HandleFinanceFunc(container, "recordPayment"))
	auth.Group("/expenses").GET("", financeRoles, controllers.HandleFinanceFunc(container, "getExpenses"))
	auth.Group("/expenses").POST("", financeRoles, controllers.HandleFinanceFunc(container, "createExpense"))
	auth.Group("/invoices").GET("", financeRoles, controllers.HandleFinanceFunc(container, "getInvoices"))
	auth.Group("/finance").GET("/stats", financeRoles, controllers.HandleFinanceFunc(container, "getStats"))
	auth.Group("/finance").GET("/chart", financeRoles, controllers.HandleFinanceFunc(container, "getChartData"))
	auth.Group("/finance").GET("/transactions", financeRoles, controllers.HandleFinanceFunc(container, "getRecentTransactions"))

	// 维修路由（租户可提交和查看自己的工单）
	auth.Group("/maintenance").GET("", controllers.HandleMaintenanceFunc(container, "getRequests"))
	auth.Group("/maintenance").POST("", controllers.HandleMaintenanceFunc(container, "createRequest"))
	auth.Group("/maintenance").PUT("/:id/status", maintenanceRoles, controllers.HandleMaintenanceFunc(container, "updateStatus"))
	auth.Group("/maintenance").PUT("/:id/assign", maintenanceRoles, controllers.HandleMaintenanceFunc(container, "assignVendor"))
	auth.Group("/maintenance").GET("/schedules", staffRoles, controllers.HandleMaintenanceFunc(container, "getSchedules"))
	auth.Group("/maintenance").POST("/schedules", staffRoles, controllers.HandleMaintenanceFunc(container, "createSchedule"))
	auth.Group("/maintenance").DELETE("/schedules/:id", staffRoles, controllers.HandleMaintenanceFunc(container, "deleteSchedule"))

	// 供应商路由
	auth.Group("/vendors").GET("", staffRoles, controllers.HandleVendorFunc(container, "getVendors"))
	auth.Group("/vendors").POST("", staffRoles, controllers.HandleVendorFunc(container, "createVendor"))
	auth.Group("/vendors").PUT("/:id", staffRoles, controllers.HandleVendorFunc(container, "updateVendor"))
	auth.Group("/vendors").DELETE("/:id", adminRoles, controllers.HandleVendorFunc(container, "deleteVendor"))

	// 任务路由
	auth.Group("/tasks").GET("", staffRoles, controllers.HandleTaskFunc(container, "getTasks"))
	auth.Group("/tasks").POST("", staffRoles, controllers.HandleTaskFunc(container, "createTask"))
	auth.Group("/tasks").PUT("/:id/status", staffRoles, controllers.HandleTaskFunc(container, "updateTaskStatus"))
	auth.Group("/tasks").DELETE("/:id", staffRoles, controllers.HandleTaskFunc(container, "deleteTask"))

	// 消息路由
	auth.Group("/conversations").GET("", controllers.HandleMessageFunc(container, "getConversations"))
	auth.Group("/conversations").POST("", controllers.HandleMessageFunc(container, "startConversation"))
	auth.Group("/conversations").GET("/:id/messages", controllers.HandleMessageFunc(container, "getMessages"))
	auth.POST("/messages", controllers.HandleMessageFunc(container, "sendMessage"))

	// 通知路由
	auth.Group("/notifications").GET("", controllers.HandleNotificationFunc(container, "getNotifications"))
	auth.Group("/notifications").PUT("/:id/read", controllers.HandleNotificationFunc(container, "markAsRead"))
	auth.Group("/notifications").PUT("/read-all", controllers.HandleNotificationFunc(container, "markAllAsRead"))

	// 文档路由
	auth.Group("/documents").GET("", controllers.HandleDocumentFunc(container, "getDocuments"))
	auth.Group("/documents").POST("", staffRoles, controllers.HandleDocumentFunc(container, "uploadDocument"))
	auth.Group("/documents").DELETE("/:id", staffRoles, controllers.HandleDocumentFunc(container, "deleteDocument"))

	// 审计路由
	auth.GET("/audit-logs", adminRoles, controllers.HandleAuditFunc(container, "getAuditLogs"))
}
