package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusUnassigned  TaskStatus = "unassigned"
	TaskStatusOngoing     TaskStatus = "ongoing"
	TaskStatusUnderReview TaskStatus = "under_review"
	TaskStatusCompleted   TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is one of the known status values.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusUnassigned, TaskStatusOngoing, TaskStatusUnderReview, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'unassigned'" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedBy   uint64     `gorm:"not null" json:"created_by"`
	AssigneeID  *uint64    `json:"assignee_id"`
	ProjectID   *uint64    `json:"project_id"`
	// Priority is required whenever ProjectID is set (1-10).
	Priority          *int `json:"priority"`
	RecurringInterval *int `json:"recurring_interval"`

	// Latest transition only; no multi-entry status history is kept.
	LastStatus          *TaskStatus `gorm:"type:varchar(20)" json:"last_status"`
	LastStatusUpdatedBy *uint64     `json:"last_status_updated_by"`
	LastStatusUpdatedAt *time.Time  `json:"last_status_updated_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator       User               `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignee      *User              `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Project       *Project           `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Collaborators []TaskCollaborator `gorm:"foreignKey:TaskID" json:"collaborators,omitempty"`
	Attachments   []TaskAttachment   `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
	Subtasks      []Subtask          `gorm:"foreignKey:ParentTaskID" json:"subtasks,omitempty"`
}

type TaskCollaborator struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// HasCollaborator reports whether the user is in the loaded collaborator set.
func (t *Task) HasCollaborator(userID uint64) bool {
	for _, c := range t.Collaborators {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// IsAssignee reports whether the user is the current assignee.
func (t *Task) IsAssignee(userID uint64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// CanBeViewedBy reports whether the user may read the task directly. Team
// and department visibility for listings is applied at query time.
func (t *Task) CanBeViewedBy(user *User) bool {
	return user.ID == t.CreatedBy ||
		t.IsAssignee(user.ID) ||
		t.HasCollaborator(user.ID) ||
		user.Role.CanSeeAllTasks()
}

// CanBeCompletedBy reports whether the user may drive the task's status:
// the creator, the assignee, or any collaborator.
func (t *Task) CanBeCompletedBy(user *User) bool {
	return user.ID == t.CreatedBy || t.IsAssignee(user.ID) || t.HasCollaborator(user.ID)
}

// CanBeAssignedBy delegates entirely to the role capability.
func (t *Task) CanBeAssignedBy(user *User) bool {
	return user.Role.CanAssignTasks()
}

// CanBeEditedBy reports whether the user may edit the task. Staff may only
// edit tasks they created; managers must be current collaborators even
// though they outrank staff. Everyone else is denied.
func (t *Task) CanBeEditedBy(user *User) bool {
	if user.Role.IsStaff() {
		return user.ID == t.CreatedBy
	}
	if user.Role.IsManager() {
		return t.HasCollaborator(user.ID)
	}
	return false
}

// CanRemoveAttachment reports whether the user may remove attachments:
// the creator, or a manager who is also a collaborator.
func (t *Task) CanRemoveAttachment(user *User) bool {
	if user.ID == t.CreatedBy {
		return true
	}
	return user.Role.IsManager() && t.HasCollaborator(user.ID)
}

// AllSubtasksCompleted reports whether every loaded subtask is completed.
// True when the task has no subtasks.
func (t *Task) AllSubtasksCompleted() bool {
	for _, st := range t.Subtasks {
		if st.Status != TaskStatusCompleted {
			return false
		}
	}
	return true
}
