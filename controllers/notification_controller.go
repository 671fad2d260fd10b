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

// InterfaceNotificationController 定义通知控制器接口
type InterfaceNotificationController interface {
	GetNotifications()
	MarkAsRead()
	MarkAllAsRead()
}

// NotificationController 通知控制器
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "markAsRead":
			controller.MarkAsRead()
		case "markAllAsRead":
			controller.MarkAllAsRead()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetNotifications 获取通知列表
// @Summary      获取通知
// @Description  获取当前用户最近的站内通知
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [get]
// @Security     BearerAuth
func (c *NotificationController) GetNotifications() {
	session := middleware.GetSession(c.Ctx)
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)

	notifications, err := notificationService.GetUserNotifications(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, notifications)
}

// 2. MarkAsRead 标记单条已读
// @Summary      标记已读
// @Description  将当前用户的一条通知标记为已读
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path int true "通知ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [put]
// @Security     BearerAuth
func (c *NotificationController) MarkAsRead() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的通知ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)

	if err := notificationService.MarkAsRead(session, uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRecordNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// 3. MarkAllAsRead 全部标记已读
// @Summary      全部已读
// @Description  将当前用户的全部未读通知标记为已读
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/read-all [put]
// @Security     BearerAuth
func (c *NotificationController) MarkAllAsRead() {
	session := middleware.GetSession(c.Ctx)
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)

	if err := notificationService.MarkAllAsRead(session); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
