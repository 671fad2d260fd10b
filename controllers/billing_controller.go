package controllers

import (
	"net/http"
	"time"

	"estate-management-service/internal/error/code"
	"estate-management-service/internal/error/response"
	"estate-management-service/services"
	"estate-management-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceBillingController 定义计费定时任务控制器接口
type InterfaceBillingController interface {
	GenerateInvoices()
	SendReminders()
}

// BillingController 计费定时任务控制器，由外部调度器经CronAuth调用
type BillingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBillingController 创建一个新的计费控制器
func NewBillingController(ctx *gin.Context, container *container.ServiceContainer) *BillingController {
	return &BillingController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleBillingFunc 返回一个处理计费定时任务请求的Gin处理函数
func HandleBillingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBillingController(ctx, container)

		switch method {
		case "generateInvoices":
			controller.GenerateInvoices()
		case "sendReminders":
			controller.SendReminders()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GenerateInvoices 生成本月租金账单
// @Summary      生成月度账单
// @Description  为所有活跃租约生成当月租金账单，已有账单的租约跳过
// @Tags         Cron
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /cron/invoices [get]
// @Security     BearerAuth
func (c *BillingController) GenerateInvoices() {
	billingService := c.Container.GetService("billing").(services.InterfaceBillingService)

	result, err := billingService.GenerateMonthlyInvoices(time.Now())
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// 2. SendReminders 发送租金提醒
// @Summary      发送租金提醒
// @Description  给3天内到期的账单发即将到期提醒，昨天到期的发逾期提醒
// @Tags         Cron
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /cron/reminders [get]
// @Security     BearerAuth
func (c *BillingController) SendReminders() {
	billingService := c.Container.GetService("billing").(services.InterfaceBillingService)

	result, err := billingService.SendRentReminders(time.Now())
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}
