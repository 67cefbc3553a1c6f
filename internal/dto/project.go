package dto

import (
	"time"

	"github.com/workdeck/workdeck-api/internal/models"
)

// ProjectDTO represents a project in API responses. IsOverdue is null when
// the project has no deadline.
type ProjectDTO struct {
	ID                uint64     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	OwnerID           uint64     `json:"owner_id"`
	DepartmentID      *uint64    `json:"department_id"`
	Deadline          *time.Time `json:"deadline"`
	IsArchived        bool       `json:"is_archived"`
	IsOverdue         *bool      `json:"is_overdue"`
	HasContainedTasks bool       `json:"has_contained_tasks"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Owner             *UserDTO   `json:"owner,omitempty"`
	Collaborators     []UserDTO  `json:"collaborators,omitempty"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO `json:"projects"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int64        `json:"total_count"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:                project.ID,
		Name:              project.Name,
		Description:       project.Description,
		OwnerID:           project.OwnerID,
		DepartmentID:      project.DepartmentID,
		Deadline:          project.Deadline,
		IsArchived:        project.IsArchived,
		IsOverdue:         project.IsOverdue(),
		HasContainedTasks: project.HasContainedTasks,
		CreatedAt:         project.CreatedAt,
		UpdatedAt:         project.UpdatedAt,
	}

	// Include owner if preloaded
	if project.Owner.ID != 0 {
		owner := ToUserDTO(project.Owner)
		dto.Owner = &owner
	}

	// Include collaborators if preloaded with their users
	if len(project.Collaborators) > 0 {
		dto.Collaborators = make([]UserDTO, 0, len(project.Collaborators))
		for _, c := range project.Collaborators {
			if c.User.ID != 0 {
				dto.Collaborators = append(dto.Collaborators, ToUserDTO(c.User))
			}
		}
	}

	return dto
}

// ToProjectListResponse converts a slice of projects to ProjectListResponse
func ToProjectListResponse(projects []models.Project, page, pageSize int, totalCount int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}

	return ProjectListResponse{
		Projects:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
