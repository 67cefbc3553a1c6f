package dto

import (
	"github.com/workdeck/workdeck-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64      `json:"id"`
	Username     string      `json:"username"`
	Role         models.Role `json:"role"`
	DepartmentID *uint64     `json:"department_id,omitempty"`
	TeamID       *uint64     `json:"team_id,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Username:     user.Username,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		TeamID:       user.TeamID,
	}
}
