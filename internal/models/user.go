package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	DepartmentID *uint64        `json:"department_id"`
	TeamID       *uint64        `json:"team_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Team       *Team       `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// CanAccessDepartment reports whether the user belongs to the given
// department. It is false when either side has no department set.
func (u *User) CanAccessDepartment(departmentID *uint64) bool {
	if u.DepartmentID == nil || departmentID == nil {
		return false
	}
	return *u.DepartmentID == *departmentID
}
