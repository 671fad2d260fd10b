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

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Register()
	Login()
	UpdateProfile()
	UpdateOrganization()
}

// AuthController 认证控制器
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email" example:"owner@example.com"`
	Password         string `json:"password" binding:"required,min=8" example:"Secret@123"`
	FirstName        string `json:"first_name" binding:"required" example:"Jane"`
	LastName         string `json:"last_name" binding:"required" example:"Doe"`
	OrganizationName string `json:"organization_name" binding:"required" example:"Sunrise Estates"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"owner@example.com"`
	Password string `json:"password" binding:"required" example:"Secret@123"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required" example:"Jane"`
	LastName  string `json:"last_name" binding:"required" example:"Doe"`
	Phone     string `json:"phone" example:"13800138000"`
}

// UpdateOrganizationRequest 更新组织请求
type UpdateOrganizationRequest struct {
	Name string `json:"name" binding:"required" example:"Sunrise Estates"`
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "updateProfile":
			controller.UpdateProfile()
		case "updateOrganization":
			controller.UpdateOrganization()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. Register 注册组织和初始管理员
// @Summary      注册
// @Description  创建组织及其第一个SUPER_ADMIN用户
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	user, err := authService.Register(req.Email, req.Password, req.FirstName, req.LastName, req.OrganizationName)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"role":            user.Role,
		"organization_id": user.OrganizationID,
	})
}

// 2. Login 登录
// @Summary      登录
// @Description  邮箱密码登录，返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录信息"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	user, token, err := authService.Login(req.Email, req.Password)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserPasswordIncorrect, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":              user.ID,
			"email":           user.Email,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"role":            user.Role,
			"organization_id": user.OrganizationID,
		},
	})
}

// 3. UpdateProfile 更新个人资料
// @Summary      更新个人资料
// @Description  更新当前登录用户的姓名和电话
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "个人资料"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /profile [put]
// @Security     BearerAuth
func (c *AuthController) UpdateProfile() {
	var req UpdateProfileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	if err := authService.UpdateProfile(session, req.FirstName, req.LastName, req.Phone); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "UPDATE", "User", strconv.Itoa(int(session.UserID)), "更新个人资料")

	response.Success(c.Ctx, nil)
}

// 4. UpdateOrganization 更新组织信息
// @Summary      更新组织
// @Description  更新当前组织名称，仅限SUPER_ADMIN和PROPERTY_MANAGER
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body UpdateOrganizationRequest true "组织信息"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Router       /organization [put]
// @Security     BearerAuth
func (c *AuthController) UpdateOrganization() {
	var req UpdateOrganizationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	if err := authService.UpdateOrganization(session, req.Name); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPermissionDenied, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "UPDATE", "Organization", strconv.Itoa(int(session.OrganizationID)), "更新组织信息")

	response.Success(c.Ctx, nil)
}
