package models

import (
	"time"

	"gorm.io/gorm"
)

// Subtask belongs to exactly one parent task. Its collaborator set must be
// a subset of the parent task's collaborators, validated on create and on
// every update.
type Subtask struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	ParentTaskID uint64         `gorm:"not null;index" json:"parent_task_id"`
	Title        string         `gorm:"not null" json:"title"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'unassigned'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	ParentTask    Task                  `gorm:"foreignKey:ParentTaskID" json:"parent_task,omitempty"`
	Collaborators []SubtaskCollaborator `gorm:"foreignKey:SubtaskID" json:"collaborators,omitempty"`
}

type SubtaskCollaborator struct {
	SubtaskID uint64    `gorm:"primarykey" json:"subtask_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Subtask Subtask `gorm:"foreignKey:SubtaskID" json:"subtask,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
