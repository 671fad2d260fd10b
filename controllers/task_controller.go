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

// InterfaceTaskController 定义任务控制器接口
type InterfaceTaskController interface {
	GetTasks()
	CreateTask()
	UpdateTaskStatus()
	DeleteTask()
}

// TaskController 任务控制器
type TaskController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTaskController 创建一个新的任务控制器
func NewTaskController(ctx *gin.Context, container *container.ServiceContainer) *TaskController {
	return &TaskController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required" example:"核对三季度账单"`
	Description string     `json:"description" example:""`
	Priority    string     `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH URGENT" example:"MEDIUM"`
	DueDate     *time.Time `json:"due_date" example:"2026-09-15T00:00:00Z"`
	AssigneeID  uint       `json:"assignee_id" example:"2"`
}

// UpdateTaskStatusRequest 更新任务状态请求
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=TODO IN_PROGRESS DONE" example:"DONE"`
}

// HandleTaskFunc 返回一个处理任务请求的Gin处理函数
func HandleTaskFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTaskController(ctx, container)

		switch method {
		case "getTasks":
			controller.GetTasks()
		case "createTask":
			controller.CreateTask()
		case "updateTaskStatus":
			controller.UpdateTaskStatus()
		case "deleteTask":
			controller.DeleteTask()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetTasks 获取任务列表
// @Summary      获取任务列表
// @Description  获取本组织的内部待办任务
// @Tags         Task
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /tasks [get]
// @Security     BearerAuth
func (c *TaskController) GetTasks() {
	session := middleware.GetSession(c.Ctx)
	taskService := c.Container.GetService("task").(services.InterfaceTaskService)

	tasks, err := taskService.GetTasks(session)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, tasks)
}

// 2. CreateTask 创建任务
// @Summary      创建任务
// @Description  创建内部待办任务，未指定负责人时默认为创建人
// @Tags         Task
// @Accept       json
// @Produce      json
// @Param        request body CreateTaskRequest true "任务信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /tasks [post]
// @Security     BearerAuth
func (c *TaskController) CreateTask() {
	var req CreateTaskRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
	}

	taskService := c.Container.GetService("task").(services.InterfaceTaskService)
	if err := taskService.CreateTask(session, task); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, task)
}

// 3. UpdateTaskStatus 更新任务状态
// @Summary      更新任务状态
// @Description  在TODO、IN_PROGRESS、DONE之间切换任务状态
// @Tags         Task
// @Accept       json
// @Produce      json
// @Param        id path int true "任务ID"
// @Param        request body UpdateTaskStatusRequest true "新状态"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id}/status [put]
// @Security     BearerAuth
func (c *TaskController) UpdateTaskStatus() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的任务ID")
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	session := middleware.GetSession(c.Ctx)
	taskService := c.Container.GetService("task").(services.InterfaceTaskService)

	if err := taskService.UpdateTaskStatus(session, uint(id), req.Status); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRecordNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// 4. DeleteTask 删除任务
// @Summary      删除任务
// @Description  删除指定任务
// @Tags         Task
// @Accept       json
// @Produce      json
// @Param        id path int true "任务ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [delete]
// @Security     BearerAuth
func (c *TaskController) DeleteTask() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的任务ID")
		return
	}

	session := middleware.GetSession(c.Ctx)
	taskService := c.Container.GetService("task").(services.InterfaceTaskService)

	if err := taskService.DeleteTask(session, uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrRecordNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
