package repository

import (
	"github.com/workdeck/workdeck-api/internal/database"
	"github.com/workdeck/workdeck-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project and its initial collaborator rows in a single
// transaction
func (r *GormProjectRepository) Create(project *models.Project, collaboratorIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		if len(collaboratorIDs) == 0 {
			return nil
		}

		collaborators := make([]models.ProjectCollaborator, len(collaboratorIDs))
		for i, userID := range collaboratorIDs {
			collaborators[i] = models.ProjectCollaborator{
				ProjectID: project.ID,
				UserID:    userID,
			}
		}

		return tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&collaborators).Error
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{})

	if !filter.IncludeArchived {
		query = query.Where("projects.is_archived = ?", false)
	}

	if filter.VisibleToUserID != nil {
		membershipSubQuery := r.db.Model(&models.ProjectCollaborator{}).
			Select("1").
			Where("project_collaborators.project_id = projects.id").
			Where("project_collaborators.user_id = ?", *filter.VisibleToUserID)

		if filter.DepartmentID != nil {
			query = query.Where(
				"projects.owner_id = ? OR EXISTS (?) OR projects.department_id = ?",
				*filter.VisibleToUserID, membershipSubQuery, *filter.DepartmentID,
			)
		} else {
			query = query.Where(
				"projects.owner_id = ? OR EXISTS (?)",
				*filter.VisibleToUserID, membershipSubQuery,
			)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("projects.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Owner").Preload("Collaborators").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update persists project field changes
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// AddCollaborator inserts a membership row. The OnConflict clause makes the
// add idempotent: concurrent adds of the same collaborator never produce
// duplicates.
func (r *GormProjectRepository) AddCollaborator(projectID, userID uint64) error {
	collaborator := models.ProjectCollaborator{
		ProjectID: projectID,
		UserID:    userID,
	}

	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&collaborator).Error
}

// RemoveCollaborator deletes a membership row
func (r *GormProjectRepository) RemoveCollaborator(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectCollaborator{}).Error
}

// MarkHasTasks flags the project as having contained tasks
func (r *GormProjectRepository) MarkHasTasks(projectID uint64) error {
	return r.db.Model(&models.Project{}).Where("id = ?", projectID).
		Update("has_contained_tasks", true).Error
}
