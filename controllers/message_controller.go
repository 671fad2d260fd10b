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

// InterfaceMessageController 定义消息控制器接口
type InterfaceMessageController interface {
	GetConversations()
	StartConversation()
	GetMessages()
	SendMessage()
}

// MessageController 消息控制器
type MessageController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMessageController 创建一个新的消息控制器
func NewMessageController(ctx *gin.Context, container *container.ServiceContainer) *MessageController {
	return &MessageController{
		Ctx:       ctx,
		Container: container,
	}
}

// StartConversationRequest 开始会话请求
type StartConversationRequest struct {
	UserID uint `json:"user_id" binding:"required" example:"2"`
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	UserID  uint   `json:"user_id" binding:"required" example:"2"`
	Content string `json:"content" binding:"required" example:"电梯已修好"`
}

// HandleMessageFunc 返回一个处理消息请求的Gin处理函数
func HandleMessageFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMessageController(ctx, container)

		switch method {
		case "getConversations":
			controller.GetConversations()
		case "startConversation":
			controller.StartConversation()
		case "getMessages":
			controller.GetMessages()
		case "sendMessage":
			controller.SendMessage()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetConversations 获取会话列表
// @Summary      获取会话列表
// @Description  获取当前用户参与的会话，按最近活跃排序
// @Tags         Message
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /conversations [get]
// @Security     BearerAuth
func (c *MessageController) GetConversations() {
	session := middleware.GetSession(c.Ctx)
	messageService := c.Container.GetService("message").(services.InterfaceMessageService)

	conversations, err := messageService.GetConversations(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, conversations)
}

// 2. StartConversation 开始会话
// @Summary      开始会话
// @Description  与组织内另一用户开始1对1会话，已有会话时返回既有会话
// @Tags         Message
// @Accept       json
// @Produce      json
// @Param        request body StartConversationRequest true "对方用户"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /conversations [post]
// @Security     BearerAuth
func (c *MessageController) StartConversation() {
	var req StartConversationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	messageService := c.Container.GetService("message").(services.InterfaceMessageService)

	conversation, err := messageService.StartConversation(session, req.UserID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRecipientRequired, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, conversation)
}

// 3. GetMessages 获取会话消息
// @Summary      获取会话消息
// @Description  获取会话内的消息，非参与者得到空列表
// @Tags         Message
// @Accept       json
// @Produce      json
// @Param        id path int true "会话ID"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /conversations/{id}/messages [get]
// @Security     BearerAuth
func (c *MessageController) GetMessages() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的会话ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	messageService := c.Container.GetService("message").(services.InterfaceMessageService)

	messages, err := messageService.GetMessages(session, uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, messages)
}

// 4. SendMessage 发送消息
// @Summary      发送消息
// @Description  向指定用户发送消息，没有既有会话时隐式创建
// @Tags         Message
// @Accept       json
// @Produce      json
// @Param        request body SendMessageRequest true "消息内容"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /messages [post]
// @Security     BearerAuth
func (c *MessageController) SendMessage() {
	var req SendMessageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	messageService := c.Container.GetService("message").(services.InterfaceMessageService)

	message, err := messageService.SendMessage(session, req.UserID, req.Content)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrConversationNotFound, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, message)
}
