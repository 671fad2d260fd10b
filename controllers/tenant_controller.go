package controllers

import (
	"net/http"
	"strconv"

	"estate-management-service/internal/error/code"
	"estate-management-service/internal/error/response"
	"estate-management-service/middleware"
	"estate-management-service/models"
	"estate-management-service/services"
	"estate-management-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceTenantController 定义承租人控制器接口
type InterfaceTenantController interface {
	GetTenants()
	GetTenant()
	CreateTenant()
	CreateTenantAccount()
	GetDashboard()
}

// TenantController 承租人控制器
type TenantController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTenantController 创建一个新的承租人控制器
func NewTenantController(ctx *gin.Context, container *container.ServiceContainer) *TenantController {
	return &TenantController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTenantRequest 创建承租人请求
type CreateTenantRequest struct {
	FirstName        string `json:"first_name" binding:"required" example:"Li"`
	LastName         string `json:"last_name" binding:"required" example:"Ming"`
	Email            string `json:"email" binding:"required,email" example:"liming@example.com"`
	Phone            string `json:"phone" binding:"required" example:"13800138000"`
	EmergencyContact string `json:"emergency_contact" example:""`
}

// CreateTenantAccountRequest 开通承租人门户账号请求
type CreateTenantAccountRequest struct {
	Email string `json:"email" binding:"required,email" example:"liming@example.com"`
}

// HandleTenantFunc 返回一个处理承租人请求的Gin处理函数
func HandleTenantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTenantController(ctx, container)

		switch method {
		case "getTenants":
			controller.GetTenants()
		case "getTenant":
			controller.GetTenant()
		case "createTenant":
			controller.CreateTenant()
		case "createTenantAccount":
			controller.CreateTenantAccount()
		case "getDashboard":
			controller.GetDashboard()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetTenants 获取承租人列表
// @Summary      获取承租人列表
// @Description  获取本组织的承租人及其门户账号状态
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /tenants [get]
// @Security     BearerAuth
func (c *TenantController) GetTenants() {
	session := middleware.GetSession(c.Ctx)
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)

	tenants, err := tenantService.GetTenants(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, tenants)
}

// 2. GetTenant 获取承租人详情
// @Summary      获取承租人详情
// @Description  根据ID获取承租人及其租约历史
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        id path int true "承租人ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /tenants/{id} [get]
// @Security     BearerAuth
func (c *TenantController) GetTenant() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的承租人ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)

	tenant, err := tenantService.GetTenantByID(session, uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrTenantNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, tenant)
}

// 3. CreateTenant 创建承租人
// @Summary      创建承租人
// @Description  登记新的承租人信息
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "承租人信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /tenants [post]
// @Security     BearerAuth
func (c *TenantController) CreateTenant() {
	var req CreateTenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	tenant := &models.Tenant{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
	}

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	if err := tenantService.CreateTenant(session, tenant); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrTenantAlreadyExist, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Tenant", strconv.Itoa(int(tenant.ID)), "创建承租人: "+tenant.FullName())

	response.Created(c.Ctx, tenant)
}

// 4. CreateTenantAccount 开通承租人门户账号
// @Summary      开通门户账号
// @Description  为承租人创建TENANT角色用户并发送欢迎邮件，临时密码只返回这一次
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        id path int true "承租人ID"
// @Param        request body CreateTenantAccountRequest true "账号信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /tenants/{id}/account [post]
// @Security     BearerAuth
func (c *TenantController) CreateTenantAccount() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的承租人ID")
		return
	}

	var req CreateTenantAccountRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)

	tempPassword, err := tenantService.CreateTenantAccount(session, uint(id), req.Email)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "User", req.Email, "开通承租人门户账号")

	response.Created(c.Ctx, gin.H{
		"temp_password": tempPassword,
	})
}

// 5. GetDashboard 获取租户门户首页统计
// @Summary      租户首页统计
// @Description  获取当前租户的下次租金、余额、待处理工单和近期收款
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /portal/dashboard [get]
// @Security     BearerAuth
func (c *TenantController) GetDashboard() {
	session := middleware.GetSession(c.Ctx)
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)

	stats, err := tenantService.GetTenantDashboardStats(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}
