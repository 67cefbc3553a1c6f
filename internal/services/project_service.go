package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound          = apperrors.NotFoundf("project not found")
	ErrProjectNameRequired      = apperrors.Validationf("project name is required")
	ErrProjectModifyForbidden   = apperrors.Forbiddenf("user may not modify this project")
	ErrProjectAccessForbidden   = apperrors.Forbiddenf("user may not access this project")
	ErrCannotRemoveProjectOwner = apperrors.Conflictf("cannot remove project owner")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	collab      *CollaborationService
	activity    *ActivityService
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, collab *CollaborationService, activity *ActivityService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		collab:      collab,
		activity:    activity,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name            string
	Description     string
	DepartmentID    *uint64
	Deadline        *time.Time
	CollaboratorIDs []uint64
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Name          *string
	Description   *string
	DepartmentID  *uint64
	Deadline      *time.Time
	ClearDeadline bool
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	IncludeArchived bool
	Page            int
	PageSize        int
}

// CreateProject creates a project owned by the creator. The owner is always
// part of the collaborator set, whatever list was supplied.
func (s *ProjectService) CreateProject(input CreateProjectInput, owner *models.User) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrProjectNameRequired
	}

	if err := s.collab.ValidateCollaborators(input.CollaboratorIDs, input.DepartmentID); err != nil {
		return nil, err
	}

	collaboratorIDs := uniqueUint64(append([]uint64{owner.ID}, input.CollaboratorIDs...))

	project := &models.Project{
		Name:         input.Name,
		Description:  input.Description,
		OwnerID:      owner.ID,
		DepartmentID: input.DepartmentID,
		Deadline:     input.Deadline,
	}

	if err := s.projectRepo.Create(project, collaboratorIDs); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.activity.Record(owner.ID, models.ResourceProject, project.ID, models.ActionCreated, nil, Snapshot{
		"name":          project.Name,
		"department_id": project.DepartmentID,
		"collaborators": collaboratorIDs,
	})

	return s.projectRepo.FindByID(project.ID, "Owner", "Collaborators", "Collaborators.User")
}

// GetProject returns a project if the actor may access it
func (s *ProjectService) GetProject(projectID uint64, actor *models.User) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !project.CanBeAccessedBy(actor) {
		return nil, ErrProjectAccessForbidden
	}

	return project, nil
}

// ListProjects returns projects visible to the actor
func (s *ProjectService) ListProjects(input ListProjectsInput, actor *models.User) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		IncludeArchived: input.IncludeArchived,
		Page:            input.Page,
		PageSize:        input.PageSize,
	}

	switch {
	case actor.Role.CanSeeAllTasks():
		// no ownership restriction
	case actor.Role.CanSeeDepartmentTasks():
		filter.VisibleToUserID = &actor.ID
		filter.DepartmentID = actor.DepartmentID
	default:
		filter.VisibleToUserID = &actor.ID
	}

	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// UpdateProject updates project fields
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput, actor *models.User) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !project.CanBeModifiedBy(actor) {
		return nil, ErrProjectModifyForbidden
	}

	before := Snapshot{}
	after := Snapshot{}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrProjectNameRequired
		}
		before["name"], after["name"] = project.Name, *input.Name
		project.Name = *input.Name
	}
	if input.Description != nil {
		before["description"], after["description"] = project.Description, *input.Description
		project.Description = *input.Description
	}
	if input.DepartmentID != nil {
		if err := s.collab.ValidateDepartmentMembership(actor.DepartmentID, input.DepartmentID); err != nil {
			return nil, err
		}
		before["department_id"], after["department_id"] = project.DepartmentID, input.DepartmentID
		project.DepartmentID = input.DepartmentID
	}
	if input.ClearDeadline {
		before["deadline"], after["deadline"] = project.Deadline, nil
		project.Deadline = nil
	} else if input.Deadline != nil {
		before["deadline"], after["deadline"] = project.Deadline, input.Deadline
		project.Deadline = input.Deadline
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceProject, project.ID, models.ActionUpdated, before, after)

	return s.projectRepo.FindByID(project.ID, "Owner", "Collaborators", "Collaborators.User")
}

// SetArchived archives or unarchives a project
func (s *ProjectService) SetArchived(projectID uint64, archived bool, actor *models.User) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !project.CanBeModifiedBy(actor) {
		return nil, ErrProjectModifyForbidden
	}

	if project.IsArchived == archived {
		return project, nil
	}

	before := Snapshot{"is_archived": project.IsArchived}
	project.IsArchived = archived

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	action := models.ActionArchived
	if !archived {
		action = models.ActionUnarchived
	}
	s.activity.Record(actor.ID, models.ResourceProject, project.ID, action, before, Snapshot{"is_archived": archived})

	return project, nil
}

// AddCollaborator adds a user to the project's collaborator set. Adding an
// existing collaborator is a no-op.
func (s *ProjectService) AddCollaborator(projectID, userID uint64, actor *models.User) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if !project.CanBeModifiedBy(actor) {
		return ErrProjectModifyForbidden
	}

	if err := s.collab.ValidateCollaborators([]uint64{userID}, project.DepartmentID); err != nil {
		return err
	}

	if err := s.projectRepo.AddCollaborator(projectID, userID); err != nil {
		return fmt.Errorf("failed to add collaborator: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceProject, projectID, models.ActionCollaboratorAdded, nil, Snapshot{"user_id": userID})

	return nil
}

// RemoveCollaborator removes a user from the project's collaborator set.
// The owner can never be removed.
func (s *ProjectService) RemoveCollaborator(projectID, userID uint64, actor *models.User) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if !project.CanBeModifiedBy(actor) {
		return ErrProjectModifyForbidden
	}

	if userID == project.OwnerID {
		return ErrCannotRemoveProjectOwner
	}

	if err := s.projectRepo.RemoveCollaborator(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceProject, projectID, models.ActionCollaboratorRemoved, Snapshot{"user_id": userID}, nil)

	return nil
}

func (s *ProjectService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Owner", "Collaborators", "Collaborators.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
