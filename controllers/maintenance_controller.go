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
)

// InterfaceMaintenanceController 定义维修控制器接口
type InterfaceMaintenanceController interface {
	GetRequests()
	CreateRequest()
	UpdateStatus()
	AssignVendor()
	GetSchedules()
	CreateSchedule()
	DeleteSchedule()
}

// MaintenanceController 维修控制器
type MaintenanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMaintenanceController 创建一个新的维修控制器
func NewMaintenanceController(ctx *gin.Context, container *container.ServiceContainer) *MaintenanceController {
	return &MaintenanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateRequestStatusRequest 更新工单状态请求
type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=SUBMITTED ASSIGNED IN_PROGRESS COMPLETED CLOSED" example:"IN_PROGRESS"`
}

// AssignVendorRequest 指派供应商请求
type AssignVendorRequest struct {
	VendorID uint `json:"vendor_id" binding:"required" example:"1"`
}

// CreateScheduleRequest 创建维护计划请求
type CreateScheduleRequest struct {
	Title       string    `json:"title" binding:"required" example:"电梯季度保养"`
	Description string    `json:"description" example:""`
	Frequency   string    `json:"frequency" binding:"required,oneof=DAILY WEEKLY MONTHLY QUARTERLY YEARLY" example:"QUARTERLY"`
	StartDate   time.Time `json:"start_date" binding:"required" example:"2026-09-01T00:00:00Z"`
	PropertyID  uint      `json:"property_id" binding:"required" example:"1"`
	AssigneeID  *uint     `json:"assignee_id" example:"2"`
}

// HandleMaintenanceFunc 返回一个处理维修请求的Gin处理函数
func HandleMaintenanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMaintenanceController(ctx, container)

		switch method {
		case "getRequests":
			controller.GetRequests()
		case "createRequest":
			controller.CreateRequest()
		case "updateStatus":
			controller.UpdateStatus()
		case "assignVendor":
			controller.AssignVendor()
		case "getSchedules":
			controller.GetSchedules()
		case "createSchedule":
			controller.CreateSchedule()
		case "deleteSchedule":
			controller.DeleteSchedule()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetRequests 获取维修工单列表
// @Summary      获取维修工单
// @Description  获取工单列表，租户角色只看到自己提交的工单
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /maintenance [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetRequests() {
	session := middleware.GetSession(c.Ctx)
	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)

	requests, err := maintenanceService.GetRequests(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, requests)
}

// 2. CreateRequest 创建维修工单
// @Summary      创建维修工单
// @Description  提交维修工单，租户自动关联本人承租人记录
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        request body services.CreateRequestInput true "工单信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /maintenance [post]
// @Security     BearerAuth
func (c *MaintenanceController) CreateRequest() {
	var req services.CreateRequestInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)

	request, err := maintenanceService.CreateRequest(session, &req)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUnitNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "MaintenanceRequest", strconv.Itoa(int(request.ID)),
		"创建维修工单: "+request.Title)

	response.Created(c.Ctx, request)
}

// 3. UpdateStatus 更新工单状态
// @Summary      更新工单状态
// @Description  更新工单状态并通知提交工单的承租人，租户角色无权操作
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "工单ID"
// @Param        request body UpdateRequestStatusRequest true "新状态"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Router       /maintenance/{id}/status [put]
// @Security     BearerAuth
func (c *MaintenanceController) UpdateStatus() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的工单ID")
		return
	}

	var req UpdateRequestStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)

	if err := maintenanceService.UpdateRequestStatus(session, uint(id), req.Status); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRequestNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "UPDATE", "MaintenanceRequest", strconv.Itoa(id),
		"更新工单状态为 "+req.Status)

	response.Success(c.Ctx, nil)
}

// 4. AssignVendor 指派供应商
// @Summary      指派供应商
// @Description  将工单指派给供应商，状态进入ASSIGNED
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "工单ID"
// @Param        request body AssignVendorRequest true "供应商"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance/{id}/assign [put]
// @Security     BearerAuth
func (c *MaintenanceController) AssignVendor() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的工单ID")
		return
	}

	var req AssignVendorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)

	if err := maintenanceService.AssignVendor(session, uint(id), req.VendorID); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRequestNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "UPDATE", "MaintenanceRequest", strconv.Itoa(id), "指派供应商")

	response.Success(c.Ctx, nil)
}

// 5. GetSchedules 获取维护计划列表
// @Summary      获取维护计划
// @Description  获取本组织的预防性维护计划，按下次执行时间排序
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /maintenance/schedules [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetSchedules() {
	session := middleware.GetSession(c.Ctx)
	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)

	schedules, err := maintenanceService.GetSchedules(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, schedules)
}

// 6. CreateSchedule 创建维护计划
// @Summary      创建维护计划
// @Description  为物业创建周期性维护计划
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateScheduleRequest true "计划信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /maintenance/schedules [post]
// @Security     BearerAuth
func (c *MaintenanceController) CreateSchedule() {
	var req CreateScheduleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	schedule := &models.MaintenanceSchedule{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		StartDate:   req.StartDate,
		PropertyID:  req.PropertyID,
		AssigneeID:  req.AssigneeID,
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	if err := maintenanceService.CreateSchedule(session, schedule); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPropertyNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "MaintenanceSchedule", strconv.Itoa(int(schedule.ID)),
		"创建维护计划: "+schedule.Title)

	response.Created(c.Ctx, schedule)
}

// 7. DeleteSchedule 删除维护计划
// @Summary      删除维护计划
// @Description  删除指定的维护计划
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "计划ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance/schedules/{id} [delete]
// @Security     BearerAuth
func (c *MaintenanceController) DeleteSchedule() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的计划ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)

	if err := maintenanceService.DeleteSchedule(session, uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrScheduleNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "DELETE", "MaintenanceSchedule", strconv.Itoa(id), "删除维护计划")

	response.Success(c.Ctx, nil)
}
