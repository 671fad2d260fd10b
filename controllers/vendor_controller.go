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

// InterfaceVendorController 定义供应商控制器接口
type InterfaceVendorController interface {
	GetVendors()
	CreateVendor()
	UpdateVendor()
	DeleteVendor()
}

// VendorController 供应商控制器
type VendorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewVendorController 创建一个新的供应商控制器
func NewVendorController(ctx *gin.Context, container *container.ServiceContainer) *VendorController {
	return &VendorController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateVendorRequest 创建供应商请求
type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required" example:"恒达水电维修"`
	ServiceType string `json:"service_type" binding:"required" example:"Plumbing"`
	Email       string `json:"email" binding:"omitempty,email" example:"service@hengda.example.com"`
	Phone       string `json:"phone" example:"13800138000"`
}

// HandleVendorFunc 返回一个处理供应商请求的Gin处理函数
func HandleVendorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewVendorController(ctx, container)

		switch method {
		case "getVendors":
			controller.GetVendors()
		case "createVendor":
			controller.CreateVendor()
		case "updateVendor":
			controller.UpdateVendor()
		case "deleteVendor":
			controller.DeleteVendor()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetVendors 获取供应商列表
// @Summary      获取供应商列表
// @Description  获取本组织的供应商及其工单
// @Tags         Vendor
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /vendors [get]
// @Security     BearerAuth
func (c *VendorController) GetVendors() {
	session := middleware.GetSession(c.Ctx)
	vendorService := c.Container.GetService("vendor").(services.InterfaceVendorService)

	vendors, err := vendorService.GetVendors(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, vendors)
}

// 2. CreateVendor 创建供应商
// @Summary      创建供应商
// @Description  在本组织目录中登记供应商
// @Tags         Vendor
// @Accept       json
// @Produce      json
// @Param        request body CreateVendorRequest true "供应商信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /vendors [post]
// @Security     BearerAuth
func (c *VendorController) CreateVendor() {
	var req CreateVendorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	vendor := &models.Vendor{
		Name:        req.Name,
		ServiceType: req.ServiceType,
		Email:       req.Email,
		Phone:       req.Phone,
	}

	vendorService := c.Container.GetService("vendor").(services.InterfaceVendorService)
	if err := vendorService.CreateVendor(session, vendor); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Vendor", strconv.Itoa(int(vendor.ID)),
		"创建供应商: "+vendor.Name)

	response.Created(c.Ctx, vendor)
}

// 3. UpdateVendor 更新供应商
// @Summary      更新供应商
// @Description  更新本组织供应商的名称、服务类型和联系方式
// @Tags         Vendor
// @Accept       json
// @Produce      json
// @Param        id path int true "供应商ID"
// @Param        request body CreateVendorRequest true "供应商信息"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /vendors/{id} [put]
// @Security     BearerAuth
func (c *VendorController) UpdateVendor() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的供应商ID")
		return
	}

	var req CreateVendorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	vendorService := c.Container.GetService("vendor").(services.InterfaceVendorService)

	input := &models.Vendor{
		Name:        req.Name,
		ServiceType: req.ServiceType,
		Email:       req.Email,
		Phone:       req.Phone,
	}
	if err := vendorService.UpdateVendor(session, uint(id), input); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRecordNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "UPDATE", "Vendor", strconv.Itoa(id),
		"更新供应商: "+req.Name)

	response.Success(c.Ctx, nil)
}

// 4. DeleteVendor 删除供应商
// @Summary      删除供应商
// @Description  删除供应商，仍有未完结工单时拒绝删除
// @Tags         Vendor
// @Accept       json
// @Produce      json
// @Param        id path int true "供应商ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /vendors/{id} [delete]
// @Security     BearerAuth
func (c *VendorController) DeleteVendor() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的供应商ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	vendorService := c.Container.GetService("vendor").(services.InterfaceVendorService)

	if err := vendorService.DeleteVendor(session, uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRecordNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "DELETE", "Vendor", strconv.Itoa(id), "删除供应商")

	response.Success(c.Ctx, nil)
}
