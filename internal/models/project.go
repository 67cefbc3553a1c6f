package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Description       string         `gorm:"type:text" json:"description"`
	OwnerID           uint64         `gorm:"not null" json:"owner_id"`
	DepartmentID      *uint64        `json:"department_id"`
	Deadline          *time.Time     `json:"deadline"`
	IsArchived        bool           `gorm:"not null;default:false" json:"is_archived"`
	HasContainedTasks bool           `gorm:"not null;default:false" json:"has_contained_tasks"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner         User                  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Department    *Department           `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Collaborators []ProjectCollaborator `gorm:"foreignKey:ProjectID" json:"collaborators,omitempty"`
}

// ProjectCollaborator is a membership row. The composite primary key makes
// collaborator addition an idempotent upsert rather than a read-modify-write
// on an embedded list.
type ProjectCollaborator struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// HasCollaborator reports whether the user is in the loaded collaborator set.
// Collaborators must be preloaded by the caller.
func (p *Project) HasCollaborator(userID uint64) bool {
	for _, c := range p.Collaborators {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// CanBeAccessedBy reports whether the user may read the project: the owner,
// any collaborator, org-wide visibility roles, and department-visibility
// roles within the project's department.
func (p *Project) CanBeAccessedBy(user *User) bool {
	if user.ID == p.OwnerID {
		return true
	}
	if p.HasCollaborator(user.ID) {
		return true
	}
	if user.Role.CanSeeAllTasks() {
		return true
	}
	return user.Role.CanSeeDepartmentTasks() && user.CanAccessDepartment(p.DepartmentID)
}

// CanBeModifiedBy reports whether the user may mutate the project.
func (p *Project) CanBeModifiedBy(user *User) bool {
	return user.ID == p.OwnerID || user.Role.IsManager()
}

// IsOverdue returns nil when the project has no deadline, so callers can
// tell "no deadline" apart from "on time". Archived projects are never
// overdue.
func (p *Project) IsOverdue() *bool {
	if p.Deadline == nil {
		return nil
	}
	overdue := !p.IsArchived && p.Deadline.Before(time.Now())
	return &overdue
}
