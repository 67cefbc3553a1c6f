package dto

import (
	"time"

	"github.com/workdeck/workdeck-api/internal/models"
)

// LastStatusUpdateDTO is the latest transition on a task
type LastStatusUpdateDTO struct {
	Status    models.TaskStatus `json:"status"`
	UpdatedBy uint64            `json:"updated_by"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// AttachmentDTO represents a task attachment in API responses
type AttachmentDTO struct {
	ID         uint64    `json:"id"`
	Filename   string    `json:"filename"`
	StorageRef string    `json:"storage_ref"`
	UploadedBy uint64    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// SubtaskDTO represents a subtask in API responses
type SubtaskDTO struct {
	ID           uint64            `json:"id"`
	ParentTaskID uint64            `json:"parent_task_id"`
	Title        string            `json:"title"`
	Status       models.TaskStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                uint64               `json:"id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Status            models.TaskStatus    `json:"status"`
	DueDate           *time.Time           `json:"due_date"`
	CreatedBy         uint64               `json:"created_by"`
	AssigneeID        *uint64              `json:"assignee_id"`
	ProjectID         *uint64              `json:"project_id"`
	Priority          *int                 `json:"priority"`
	RecurringInterval *int                 `json:"recurring_interval"`
	LastStatusUpdate  *LastStatusUpdateDTO `json:"last_status_update,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Creator           *UserDTO             `json:"creator,omitempty"`
	Assignee          *UserDTO             `json:"assignee,omitempty"`
	Collaborators     []UserDTO            `json:"collaborators,omitempty"`
	Attachments       []AttachmentDTO      `json:"attachments,omitempty"`
	Subtasks          []SubtaskDTO         `json:"subtasks,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID        uint64            `json:"id"`
	Title     string            `json:"title"`
	Status    models.TaskStatus `json:"status"`
	DueDate   *time.Time        `json:"due_date"`
	ProjectID *uint64           `json:"project_id"`
	Priority  *int              `json:"priority"`
	CreatedBy uint64            `json:"created_by"`
	Creator   *UserDTO          `json:"creator,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
}

// ActivityLogDTO represents an audit record in API responses
type ActivityLogDTO struct {
	ID           uint64                `json:"id"`
	ResourceID   uint64                `json:"resource_id"`
	ResourceType string                `json:"resource_type"`
	ActorID      uint64                `json:"actor_id"`
	Action       models.ActivityAction `json:"action"`
	Details      string                `json:"details"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Status:            task.Status,
		DueDate:           task.DueDate,
		CreatedBy:         task.CreatedBy,
		AssigneeID:        task.AssigneeID,
		ProjectID:         task.ProjectID,
		Priority:          task.Priority,
		RecurringInterval: task.RecurringInterval,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}

	if task.LastStatus != nil && task.LastStatusUpdatedBy != nil && task.LastStatusUpdatedAt != nil {
		dto.LastStatusUpdate = &LastStatusUpdateDTO{
			Status:    *task.LastStatus,
			UpdatedBy: *task.LastStatusUpdatedBy,
			UpdatedAt: *task.LastStatusUpdatedAt,
		}
	}

	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	if len(task.Collaborators) > 0 {
		dto.Collaborators = make([]UserDTO, 0, len(task.Collaborators))
		for _, c := range task.Collaborators {
			if c.User.ID != 0 {
				dto.Collaborators = append(dto.Collaborators, ToUserDTO(c.User))
			}
		}
	}

	if len(task.Attachments) > 0 {
		dto.Attachments = make([]AttachmentDTO, len(task.Attachments))
		for i, a := range task.Attachments {
			dto.Attachments[i] = ToAttachmentDTO(a)
		}
	}

	if len(task.Subtasks) > 0 {
		dto.Subtasks = make([]SubtaskDTO, len(task.Subtasks))
		for i, st := range task.Subtasks {
			dto.Subtasks[i] = ToSubtaskDTO(st)
		}
	}

	return dto
}

// ToAttachmentDTO converts a TaskAttachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.TaskAttachment) AttachmentDTO {
	return AttachmentDTO{
		ID:         attachment.ID,
		Filename:   attachment.Filename,
		StorageRef: attachment.StorageRef,
		UploadedBy: attachment.UploadedBy,
		UploadedAt: attachment.UploadedAt,
	}
}

// ToSubtaskDTO converts a Subtask model to SubtaskDTO
func ToSubtaskDTO(subtask models.Subtask) SubtaskDTO {
	return SubtaskDTO{
		ID:           subtask.ID,
		ParentTaskID: subtask.ParentTaskID,
		Title:        subtask.Title,
		Status:       subtask.Status,
		CreatedAt:    subtask.CreatedAt,
	}
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		DueDate:   task.DueDate,
		ProjectID: task.ProjectID,
		Priority:  task.Priority,
		CreatedBy: task.CreatedBy,
		CreatedAt: task.CreatedAt,
	}

	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}

// ToActivityLogDTOs converts audit records for API responses
func ToActivityLogDTOs(entries []models.ActivityLog) []ActivityLogDTO {
	items := make([]ActivityLogDTO, len(entries))
	for i, e := range entries {
		items[i] = ActivityLogDTO{
			ID:           e.ID,
			ResourceID:   e.ResourceID,
			ResourceType: e.ResourceType,
			ActorID:      e.ActorID,
			Action:       e.Action,
			Details:      e.Details,
			CreatedAt:    e.CreatedAt,
		}
	}
	return items
}
