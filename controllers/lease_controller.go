package controllers

import (
	"net/http"
	"strconv"
	"time"

	"estate-management-service/internal/error/code"
	"estate-management-service/internal/error/response"
	"estate-management-service/middleware"
	"estate-management-service/models"
	"estate-management-service/services"
	"estate-management-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InterfaceLeaseController 定义租约控制器接口
type InterfaceLeaseController interface {
	GetLeases()
	CreateLease()
	EndLease()
}

// LeaseController 租约控制器
type LeaseController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewLeaseController 创建一个新的租约控制器
func NewLeaseController(ctx *gin.Context, container *container.ServiceContainer) *LeaseController {
	return &LeaseController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateLeaseRequest 创建租约请求
type CreateLeaseRequest struct {
	TenantID      uint            `json:"tenant_id" binding:"required" example:"1"`
	UnitID        uint            `json:"unit_id" binding:"required" example:"1"`
	StartDate     time.Time       `json:"start_date" binding:"required" example:"2026-01-01T00:00:00Z"`
	EndDate       time.Time       `json:"end_date" binding:"required" example:"2026-12-31T00:00:00Z"`
	RentAmount    decimal.Decimal `json:"rent_amount" binding:"required" example:"4500.00"`
	DepositAmount decimal.Decimal `json:"deposit_amount" example:"9000.00"`
}

// HandleLeaseFunc 返回一个处理租约请求的Gin处理函数
func HandleLeaseFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewLeaseController(ctx, container)

		switch method {
		case "getLeases":
			controller.GetLeases()
		case "createLease":
			controller.CreateLease()
		case "endLease":
			controller.EndLease()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetLeases 获取租约列表
// @Summary      获取租约列表
// @Description  获取本组织的全部租约
// @Tags         Lease
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /leases [get]
// @Security     BearerAuth
func (c *LeaseController) GetLeases() {
	session := middleware.GetSession(c.Ctx)
	leaseService := c.Container.GetService("lease").(services.InterfaceLeaseService)

	leases, err := leaseService.GetLeases(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, leases)
}

// 2. CreateLease 创建租约
// @Summary      创建租约
// @Description  为空置单元创建租约，单元随之进入OCCUPIED状态
// @Tags         Lease
// @Accept       json
// @Produce      json
// @Param        request body CreateLeaseRequest true "租约信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /leases [post]
// @Security     BearerAuth
func (c *LeaseController) CreateLease() {
	var req CreateLeaseRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	lease := &models.Lease{
		TenantID:      req.TenantID,
		UnitID:        req.UnitID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
	}

	leaseService := c.Container.GetService("lease").(services.InterfaceLeaseService)
	if err := leaseService.CreateLease(session, lease); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUnitNotVacant, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Lease", strconv.Itoa(int(lease.ID)), "创建租约")

	response.Created(c.Ctx, lease)
}

// 3. EndLease 结束租约
// @Summary      结束租约
// @Description  租约置为非活跃，单元回到VACANT状态
// @Tags         Lease
// @Accept       json
// @Produce      json
// @Param        id path int true "租约ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /leases/{id}/end [post]
// @Security     BearerAuth
func (c *LeaseController) EndLease() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的租约ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	leaseService := c.Container.GetService("lease").(services.InterfaceLeaseService)

	if err := leaseService.EndLease(session, uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrLeaseNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "UPDATE", "Lease", strconv.Itoa(id), "结束租约")

	response.Success(c.Ctx, nil)
}
