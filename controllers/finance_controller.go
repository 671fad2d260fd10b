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

// InterfaceFinanceController 定义财务控制器接口
type InterfaceFinanceController interface {
	RecordPayment()
	GetPayments()
	CreateExpense()
	GetExpenses()
	GetInvoices()
	GetStats()
	GetChartData()
	GetRecentTransactions()
}

// FinanceController 财务控制器
type FinanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFinanceController 创建一个新的财务控制器
func NewFinanceController(ctx *gin.Context, container *container.ServiceContainer) *FinanceController {
	return &FinanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// RecordPaymentRequest 录入收款请求
type RecordPaymentRequest struct {
	LeaseID uint            `json:"lease_id" binding:"required" example:"1"`
	Amount  decimal.Decimal `json:"amount" binding:"required" example:"4500.00"`
	Method  string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CREDIT_CARD CHECK" example:"BANK_TRANSFER"`
	Date    time.Time       `json:"date" example:"2026-08-01T00:00:00Z"`
}

// CreateExpenseRequest 录入支出请求
type CreateExpenseRequest struct {
	PropertyID  uint            `json:"property_id" binding:"required" example:"1"`
	Category    string          `json:"category" binding:"required" example:"Repairs"`
	Amount      decimal.Decimal `json:"amount" binding:"required" example:"800.00"`
	Description string          `json:"description" example:"走廊照明维修"`
	Date        time.Time       `json:"date" example:"2026-08-01T00:00:00Z"`
}

// HandleFinanceFunc 返回一个处理财务请求的Gin处理函数
func HandleFinanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFinanceController(ctx, container)

		switch method {
		case "recordPayment":
			controller.RecordPayment()
		case "getPayments":
			controller.GetPayments()
		case "createExpense":
			controller.CreateExpense()
		case "getExpenses":
			controller.GetExpenses()
		case "getInvoices":
			controller.GetInvoices()
		case "getStats":
			controller.GetStats()
		case "getChartData":
			controller.GetChartData()
		case "getRecentTransactions":
			controller.GetRecentTransactions()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. RecordPayment 录入收款
// @Summary      录入收款
// @Description  为租约录入一笔收款，成功后给承租人发通知和收据邮件
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Param        request body RecordPaymentRequest true "收款信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /payments [post]
// @Security     BearerAuth
func (c *FinanceController) RecordPayment() {
	var req RecordPaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	payment := &models.Payment{
		LeaseID: req.LeaseID,
		Amount:  req.Amount,
		Method:  req.Method,
		Date:    req.Date,
	}

	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)
	if err := financeService.RecordPayment(session, payment); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPaymentFailed, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Payment", strconv.Itoa(int(payment.ID)),
		"录入收款: "+payment.Amount.StringFixed(2))

	response.Created(c.Ctx, payment)
}

// 2. GetPayments 获取收款记录
// @Summary      获取收款记录
// @Description  获取本组织的全部收款记录
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /payments [get]
// @Security     BearerAuth
func (c *FinanceController) GetPayments() {
	session := middleware.GetSession(c.Ctx)
	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)

	payments, err := financeService.GetPayments(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, payments)
}

// 3. CreateExpense 录入支出
// @Summary      录入支出
// @Description  为物业录入一笔支出
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "支出信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /expenses [post]
// @Security     BearerAuth
func (c *FinanceController) CreateExpense() {
	var req CreateExpenseRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	expense := &models.Expense{
		PropertyID:  req.PropertyID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}

	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)
	if err := financeService.CreateExpense(session, expense); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPropertyNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Expense", strconv.Itoa(int(expense.ID)),
		"录入支出: "+expense.Amount.StringFixed(2))

	response.Created(c.Ctx, expense)
}

// 4. GetExpenses 获取支出记录
// @Summary      获取支出记录
// @Description  获取本组织的全部支出记录
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /expenses [get]
// @Security     BearerAuth
func (c *FinanceController) GetExpenses() {
	session := middleware.GetSession(c.Ctx)
	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)

	expenses, err := financeService.GetExpenses(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, expenses)
}

// 5. GetInvoices 获取账单列表
// @Summary      获取账单列表
// @Description  获取本组织的全部租金账单
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /invoices [get]
// @Security     BearerAuth
func (c *FinanceController) GetInvoices() {
	session := middleware.GetSession(c.Ctx)
	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)

	invoices, err := financeService.GetInvoices(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, invoices)
}

// 6. GetStats 获取财务概览
// @Summary      财务概览
// @Description  获取总收入、总支出、净收入和待收账单数
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /finance/stats [get]
// @Security     BearerAuth
func (c *FinanceController) GetStats() {
	session := middleware.GetSession(c.Ctx)
	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)

	stats, err := financeService.GetFinancialStats(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}

// 7. GetChartData 获取收支曲线
// @Summary      收支曲线
// @Description  获取近6个月的月度收入与支出，从旧到新
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /finance/chart [get]
// @Security     BearerAuth
func (c *FinanceController) GetChartData() {
	session := middleware.GetSession(c.Ctx)
	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)

	points, err := financeService.GetMonthlyChartData(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, points)
}

// 8. GetRecentTransactions 获取近期交易
// @Summary      近期交易
// @Description  获取最近的收款与支出合并视图，最多10条
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /finance/transactions [get]
// @Security     BearerAuth
func (c *FinanceController) GetRecentTransactions() {
	session := middleware.GetSession(c.Ctx)
	financeService := c.Container.GetService("finance").(services.InterfaceFinanceService)

	transactions, err := financeService.GetRecentTransactions(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, transactions)
}
