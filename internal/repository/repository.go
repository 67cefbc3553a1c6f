package repository

import (
	"time"

	"github.com/workdeck/workdeck-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// UpdateRole changes a user's role
	UpdateRole(id uint64, role models.Role) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	// VisibleToUserID limits results to projects owned by or shared with
	// the user. Nil means no ownership restriction.
	VisibleToUserID *uint64
	// DepartmentID additionally admits projects in the given department.
	DepartmentID    *uint64
	IncludeArchived bool
	Page            int
	PageSize        int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project together with its initial collaborator rows
	// in a single transaction
	Create(project *models.Project, collaboratorIDs []uint64) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// Update persists project field changes
	Update(project *models.Project) error

	// AddCollaborator inserts a membership row; adding an existing
	// collaborator is a no-op
	AddCollaborator(projectID, userID uint64) error

	// RemoveCollaborator deletes a membership row
	RemoveCollaborator(projectID, userID uint64) error

	// MarkHasTasks flags the project as having contained tasks. The flag is
	// never reset.
	MarkHasTasks(projectID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// Visibility scoping; at most one of these is set, per the actor's role.
	CreatorDepartmentID *uint64
	CreatorTeamID       *uint64
	InvolvedUserID      *uint64

	ProjectID     *uint64
	Status        *models.TaskStatus
	DueDateFrom   *time.Time
	DueDateTo     *time.Time
	SortByDueDate bool
	Page          int
	PageSize      int
}

// TaskMetricsFilter scopes status-bucket aggregation
type TaskMetricsFilter struct {
	CreatorDepartmentID *uint64
	CreatorTeamID       *uint64
	InvolvedUserID      *uint64
}

// TaskRepository defines the interface for task, subtask and attachment
// data access
type TaskRepository interface {
	// Create creates a task together with its initial collaborator rows
	Create(task *models.Task, collaboratorIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists task field changes
	Update(task *models.Task) error

	// Delete soft deletes a task; collaborator rows and audit history persist
	Delete(id uint64) error

	// AddCollaborator inserts a membership row; idempotent
	AddCollaborator(taskID, userID uint64) error

	// RemoveCollaborator deletes a membership row
	RemoveCollaborator(taskID, userID uint64) error

	// AddAttachment appends an attachment row
	AddAttachment(attachment *models.TaskAttachment) error

	// FindAttachment finds an attachment on a task
	FindAttachment(taskID, attachmentID uint64) (*models.TaskAttachment, error)

	// RemoveAttachment soft deletes an attachment
	RemoveAttachment(taskID, attachmentID uint64) error

	// CreateSubtask creates a subtask with its collaborator rows
	CreateSubtask(subtask *models.Subtask, collaboratorIDs []uint64) error

	// FindSubtask finds a subtask under a parent task
	FindSubtask(parentTaskID, subtaskID uint64) (*models.Subtask, error)

	// UpdateSubtask persists subtask changes and replaces its collaborator
	// rows when collaboratorIDs is non-nil
	UpdateSubtask(subtask *models.Subtask, collaboratorIDs []uint64) error

	// CountByStatus buckets non-deleted tasks by status within the scope
	CountByStatus(filter TaskMetricsFilter) (map[models.TaskStatus]int64, error)
}

// ActivityLogRepository defines the interface for audit records
type ActivityLogRepository interface {
	// Create appends an audit record; records are never updated or deleted
	Create(entry *models.ActivityLog) error

	// ListByResource returns audit records for one resource, newest first
	ListByResource(resourceType string, resourceID uint64) ([]models.ActivityLog, error)
}
