package services

import (
	"errors"

	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InterfaceTaskService 定义任务服务接口
type InterfaceTaskService interface {
	CreateTask(session *Session, task *models.Task) error
	GetTasks(session *Session) ([]models.Task, error)
	UpdateTaskStatus(session *Session, taskID uint, status string) error
	DeleteTask(session *Session, taskID uint) error
}

// TaskService 提供组织内部待办任务服务
type TaskService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewTaskService 创建一个新的任务服务
func NewTaskService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceTaskService {
	return &TaskService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

var validTaskStatuses = map[string]bool{
	models.TaskStatusTodo:       true,
	models.TaskStatusInProgress: true,
	models.TaskStatusDone:       true,
}

// CreateTask 创建任务。创建人取自会话，未指定负责人时默认为创建人；
// 指定的负责人必须是本组织用户。
func (s *TaskService) CreateTask(session *Session, task *models.Task) error {
	if task.Title == "" {
		return errors.New("任务标题不能为空")
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if !validTaskStatuses[task.Status] {
		return errors.New("无效的任务状态")
	}

	task.OrganizationID = session.OrganizationID
	task.CreatorID = session.UserID
	if task.AssigneeID == 0 {
		task.AssigneeID = session.UserID
	} else {
		var count int64
		if err := s.DB.Model(&models.User{}).
			Where("id = ? AND organization_id = ?", task.AssigneeID, session.OrganizationID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("负责人不存在")
		}
	}

	if err := s.DB.Create(task).Error; err != nil {
		return err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewTasks)
	return nil
}

// GetTasks 获取本组织的任务列表
func (s *TaskService) GetTasks(session *Session) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.DB.
		Where("organization_id = ?", session.OrganizationID).
		Preload("Creator").
		Preload("Assignee").
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus 更新任务状态
func (s *TaskService) UpdateTaskStatus(session *Session, taskID uint, status string) error {
	if !validTaskStatuses[status] {
		return errors.New("无效的任务状态")
	}

	result := s.DB.Model(&models.Task{}).
		Where("id = ? AND organization_id = ?", taskID, session.OrganizationID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("任务不存在")
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewTasks)
	return nil
}

// DeleteTask 删除任务
func (s *TaskService) DeleteTask(session *Session, taskID uint) error {
	result := s.DB.
		Where("id = ? AND organization_id = ?", taskID, session.OrganizationID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("任务不存在")
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewTasks)
	return nil
}
