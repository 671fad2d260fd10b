package controllers

import (
	"net/http"
	"strconv"

	"estate-management-service/internal/error/code"
	"estate-management-service/internal/error/response"
	"estate-management-service/middleware"
	"estate-management-service/services"
	"estate-management-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceAuditController 定义审计控制器接口
type InterfaceAuditController interface {
	GetAuditLogs()
}

// AuditController 审计控制器
type AuditController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuditController 创建一个新的审计控制器
func NewAuditController(ctx *gin.Context, container *container.ServiceContainer) *AuditController {
	return &AuditController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAuditFunc 返回一个处理审计请求的Gin处理函数
func HandleAuditFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuditController(ctx, container)

		switch method {
		case "getAuditLogs":
			controller.GetAuditLogs()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetAuditLogs 获取审计记录
// @Summary      获取审计记录
// @Description  获取本组织最近的操作审计记录
// @Tags         Audit
// @Accept       json
// @Produce      json
// @Param        limit query int false "条数上限, 默认为50"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /audit-logs [get]
// @Security     BearerAuth
func (c *AuditController) GetAuditLogs() {
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	session := middleware.GetSession(c.Ctx)
	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)

	logs, err := auditService.GetAuditLogs(session, limit)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, logs)
}
