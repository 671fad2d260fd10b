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
	"github.com/shopspring/decimal"
)

// InterfacePropertyController 定义物业控制器接口
type InterfacePropertyController interface {
	GetProperties()
	GetProperty()
	CreateProperty()
	DeleteProperty()
	CreateUnit()
}

// PropertyController 物业控制器
type PropertyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPropertyController 创建一个新的物业控制器
func NewPropertyController(ctx *gin.Context, container *container.ServiceContainer) *PropertyController {
	return &PropertyController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreatePropertyRequest 创建物业请求
type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required" example:"Sunrise Apartments"`
	Address     string `json:"address" binding:"required" example:"88 Garden Road"`
	City        string `json:"city" binding:"required" example:"Shanghai"`
	State       string `json:"state" example:""`
	Country     string `json:"country" binding:"required" example:"China"`
	ZipCode     string `json:"zip_code" example:"200000"`
	Type        string `json:"type" binding:"required,oneof=RESIDENTIAL COMMERCIAL MIXED" example:"RESIDENTIAL"`
	Description string `json:"description" example:""`
}

// CreateUnitRequest 创建单元请求
type CreateUnitRequest struct {
	UnitNumber string          `json:"unit_number" binding:"required" example:"3-201"`
	Bedrooms   int             `json:"bedrooms" example:"2"`
	Bathrooms  int             `json:"bathrooms" example:"1"`
	SqFt       *int            `json:"sq_ft" example:"86"`
	MarketRent decimal.Decimal `json:"market_rent" example:"4500.00"`
}

// HandlePropertyFunc 返回一个处理物业请求的Gin处理函数
func HandlePropertyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPropertyController(ctx, container)

		switch method {
		case "getProperties":
			controller.GetProperties()
		case "getProperty":
			controller.GetProperty()
		case "createProperty":
			controller.CreateProperty()
		case "deleteProperty":
			controller.DeleteProperty()
		case "createUnit":
			controller.CreateUnit()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetProperties 获取物业列表
// @Summary      获取物业列表
// @Description  获取本组织的全部物业及其单元
// @Tags         Property
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /properties [get]
// @Security     BearerAuth
func (c *PropertyController) GetProperties() {
	session := middleware.GetSession(c.Ctx)
	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)

	properties, err := propertyService.GetProperties(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, properties)
}

// 2. GetProperty 获取物业详情
// @Summary      获取物业详情
// @Description  根据ID获取物业及其单元和活跃租约
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        id path int true "物业ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /properties/{id} [get]
// @Security     BearerAuth
func (c *PropertyController) GetProperty() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的物业ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)

	property, err := propertyService.GetPropertyByID(session, uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPropertyNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, property)
}

// 3. CreateProperty 创建物业
// @Summary      创建物业
// @Description  在本组织下创建物业
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "物业信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /properties [post]
// @Security     BearerAuth
func (c *PropertyController) CreateProperty() {
	var req CreatePropertyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	property := &models.Property{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		ZipCode:     req.ZipCode,
		Type:        req.Type,
		Description: req.Description,
	}

	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)
	if err := propertyService.CreateProperty(session, property); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Property", strconv.Itoa(int(property.ID)), "创建物业: "+property.Name)

	response.Created(c.Ctx, property)
}

// 4. DeleteProperty 删除物业
// @Summary      删除物业
// @Description  删除物业，仍有活跃租约时拒绝删除
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        id path int true "物业ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /properties/{id} [delete]
// @Security     BearerAuth
func (c *PropertyController) DeleteProperty() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的物业ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)

	if err := propertyService.DeleteProperty(session, uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPropertyNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "DELETE", "Property", strconv.Itoa(id), "删除物业")

	response.Success(c.Ctx, nil)
}

// 5. CreateUnit 创建单元
// @Summary      创建单元
// @Description  在指定物业下创建出租单元
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        id path int true "物业ID"
// @Param        request body CreateUnitRequest true "单元信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /properties/{id}/units [post]
// @Security     BearerAuth
func (c *PropertyController) CreateUnit() {
	propertyID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的物业ID")
		return
	}

	var req CreateUnitRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	unit := &models.Unit{
		UnitNumber: req.UnitNumber,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		SqFt:       req.SqFt,
		MarketRent: req.MarketRent,
	}

	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)
	if err := propertyService.CreateUnit(session, uint(propertyID), unit); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUnitNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Unit", strconv.Itoa(int(unit.ID)), "创建单元: "+unit.UnitNumber)

	response.Created(c.Ctx, unit)
}
