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

// InterfaceDocumentController 定义文档控制器接口
type InterfaceDocumentController interface {
	GetDocuments()
	UploadDocument()
	DeleteDocument()
}

// DocumentController 文档控制器
type DocumentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDocumentController 创建一个新的文档控制器
func NewDocumentController(ctx *gin.Context, container *container.ServiceContainer) *DocumentController {
	return &DocumentController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDocumentFunc 返回一个处理文档请求的Gin处理函数
func HandleDocumentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDocumentController(ctx, container)

		switch method {
		case "getDocuments":
			controller.GetDocuments()
		case "uploadDocument":
			controller.UploadDocument()
		case "deleteDocument":
			controller.DeleteDocument()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetDocuments 获取文档列表
// @Summary      获取文档列表
// @Description  获取可见文档，租户只看到关联自己的文档
// @Tags         Document
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /documents [get]
// @Security     BearerAuth
func (c *DocumentController) GetDocuments() {
	session := middleware.GetSession(c.Ctx)
	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)

	documents, err := documentService.GetDocuments(c.Ctx.Request.Context(), session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, documents)
}

// 2. UploadDocument 上传文档
// @Summary      上传文档
// @Description  multipart表单上传文件到对象存储，可选关联物业或承租人
// @Tags         Document
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "文件"
// @Param        property_id formData int false "关联物业ID"
// @Param        tenant_id formData int false "关联承租人ID"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /documents [post]
// @Security     BearerAuth
func (c *DocumentController) UploadDocument() {
	fileHeader, err := c.Ctx.FormFile("file")
	if err != nil {
		response.ParamError(c.Ctx, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUploadFailed, err.Error(), nil)
		return
	}
	defer file.Close()

	input := &services.UploadDocumentInput{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}
	if value := c.Ctx.PostForm("property_id"); value != "" {
		if id, err := strconv.Atoi(value); err == nil {
			propertyID := uint(id)
			input.PropertyID = &propertyID
		}
	}
	if value := c.Ctx.PostForm("tenant_id"); value != "" {
		if id, err := strconv.Atoi(value); err == nil {
			tenantID := uint(id)
			input.TenantID = &tenantID
		}
	}

	session := middleware.GetSession(c.Ctx)
	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)

	document, err := documentService.UploadDocument(c.Ctx.Request.Context(), session, input)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUploadFailed, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "CREATE", "Document", strconv.Itoa(int(document.ID)),
		"上传文档: "+document.Name)

	response.Created(c.Ctx, document)
}

// 3. DeleteDocument 删除文档
// @Summary      删除文档
// @Description  删除文档记录及对象存储中的文件
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        id path int true "文档ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [delete]
// @Security     BearerAuth
func (c *DocumentController) DeleteDocument() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的文档ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)

	if err := documentService.DeleteDocument(c.Ctx.Request.Context(), session, uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDocumentNotFound, err.Error(), nil)
		return
	}

	auditService := c.Container.GetService("audit").(services.InterfaceAuditService)
	auditService.LogActivity(session, "DELETE", "Document", strconv.Itoa(id), "删除文档")

	response.Success(c.Ctx, nil)
}
