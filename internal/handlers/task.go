package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workdeck/workdeck-api/internal/dto"
	apierrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/services"
	"github.com/workdeck/workdeck-api/internal/utils"
)

type TaskHandler struct {
	taskService     *services.TaskService
	activityService *services.ActivityService
}

func NewTaskHandler(taskService *services.TaskService, activityService *services.ActivityService) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		activityService: activityService,
	}
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title             string            `json:"title" binding:"required"`
		Description       string            `json:"description"`
		Status            models.TaskStatus `json:"status"`
		DueDate           *time.Time        `json:"due_date"`
		ProjectID         *uint64           `json:"project_id"`
		Priority          *int              `json:"priority"`
		RecurringInterval *int              `json:"recurring_interval"`
		CollaboratorIDs   []uint64          `json:"collaborator_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Status:            req.Status,
		DueDate:           req.DueDate,
		ProjectID:         req.ProjectID,
		Priority:          req.Priority,
		RecurringInterval: req.RecurringInterval,
		CollaboratorIDs:   req.CollaboratorIDs,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns tasks within the caller's visibility scope
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		DueToday:      c.Query("due_today") == "true",
		SortByDueDate: c.Query("sort") == "due_date",
		Page:          params.Page,
		PageSize:      params.Limit,
	}

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		input.ProjectID = &projectID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !models.ValidTaskStatus(status) {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}

	tasks, total, err := h.taskService.ListTasks(input, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask updates task fields
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title             *string    `json:"title"`
		Description       *string    `json:"description"`
		DueDate           *time.Time `json:"due_date"`
		ClearDueDate      bool       `json:"clear_due_date"`
		ProjectID         *uint64    `json:"project_id"`
		Priority          *int       `json:"priority"`
		RecurringInterval *int       `json:"recurring_interval"`
		ClearRecurring    bool       `json:"clear_recurring"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, services.UpdateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		DueDate:           req.DueDate,
		ClearDueDate:      req.ClearDueDate,
		ProjectID:         req.ProjectID,
		Priority:          req.Priority,
		RecurringInterval: req.RecurringInterval,
		ClearRecurring:    req.ClearRecurring,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AssignTask sets the task's assignee and activates it
func (h *TaskHandler) AssignTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AssignRequest struct {
		AssigneeID uint64 `json:"assignee_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.AssignTask(taskID, req.AssigneeID, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateStatus transitions the task's status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type StatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, req.Status, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AddCollaborator adds a user to the task's collaborators
func (h *TaskHandler) AddCollaborator(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CollaboratorRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req CollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if err := h.taskService.AddCollaborator(taskID, req.UserID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator added"})
}

// RemoveCollaborator removes a user from the task's collaborators
func (h *TaskHandler) RemoveCollaborator(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.taskService.RemoveCollaborator(taskID, userID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed"})
}

// AddAttachment records a file reference on the task
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AttachmentRequest struct {
		Filename   string `json:"filename" binding:"required"`
		StorageRef string `json:"storage_ref"`
	}

	var req AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	attachment, err := h.taskService.AddAttachment(taskID, services.AddAttachmentInput{
		Filename:   req.Filename,
		StorageRef: req.StorageRef,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// RemoveAttachment removes an attachment from the task
func (h *TaskHandler) RemoveAttachment(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := parseIDParam(c, "attachment_id")
	if !ok {
		return
	}

	if err := h.taskService.RemoveAttachment(taskID, attachmentID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment removed"})
}

// CreateSubtask creates a subtask under the task
func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateSubtaskRequest struct {
		Title           string   `json:"title" binding:"required"`
		CollaboratorIDs []uint64 `json:"collaborator_ids"`
	}

	var req CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	subtask, err := h.taskService.CreateSubtask(taskID, services.CreateSubtaskInput{
		Title:           req.Title,
		CollaboratorIDs: req.CollaboratorIDs,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubtaskDTO(*subtask))
}

// UpdateSubtask updates a subtask
func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	subtaskID, ok := parseIDParam(c, "subtask_id")
	if !ok {
		return
	}

	type UpdateSubtaskRequest struct {
		Title           *string            `json:"title"`
		Status          *models.TaskStatus `json:"status"`
		CollaboratorIDs []uint64           `json:"collaborator_ids"`
	}

	var req UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	subtask, err := h.taskService.UpdateSubtask(taskID, subtaskID, services.UpdateSubtaskInput{
		Title:           req.Title,
		Status:          req.Status,
		CollaboratorIDs: req.CollaboratorIDs,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTO(*subtask))
}

// GetTaskActivity returns the audit trail of a task
func (h *TaskHandler) GetTaskActivity(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.taskService.GetTask(taskID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	entries, err := h.activityService.History(models.ResourceTask, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": dto.ToActivityLogDTOs(entries)})
}
