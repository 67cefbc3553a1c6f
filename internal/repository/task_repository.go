package repository

import (
	"github.com/workdeck/workdeck-api/internal/database"
	"github.com/workdeck/workdeck-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task and its initial collaborator rows in a single
// transaction
func (r *GormTaskRepository) Create(task *models.Task, collaboratorIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		if len(collaboratorIDs) == 0 {
			return nil
		}

		collaborators := make([]models.TaskCollaborator, len(collaboratorIDs))
		for i, userID := range collaboratorIDs {
			collaborators[i] = models.TaskCollaborator{
				TaskID: task.ID,
				UserID: userID,
			}
		}

		return tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&collaborators).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})
	query = applyTaskScope(r.db, query, filter.CreatorDepartmentID, filter.CreatorTeamID, filter.InvolvedUserID)

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("tasks.due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortByDueDate {
		listQuery = listQuery.Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC")
	} else {
		listQuery = listQuery.Order("tasks.created_at DESC")
	}

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Creator").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// applyTaskScope narrows a task query to the actor's visibility: their
// department's creators, their team's creators, or tasks they are involved
// in (creator, assignee or collaborator). At most one scope is set.
func applyTaskScope(db, query *gorm.DB, departmentID, teamID, involvedUserID *uint64) *gorm.DB {
	switch {
	case departmentID != nil:
		creatorSubQuery := db.Model(&models.User{}).
			Select("1").
			Where("users.id = tasks.created_by").
			Where("users.department_id = ?", *departmentID)
		return query.Where("EXISTS (?)", creatorSubQuery)
	case teamID != nil:
		creatorSubQuery := db.Model(&models.User{}).
			Select("1").
			Where("users.id = tasks.created_by").
			Where("users.team_id = ?", *teamID)
		return query.Where("EXISTS (?)", creatorSubQuery)
	case involvedUserID != nil:
		collaboratorSubQuery := db.Model(&models.TaskCollaborator{}).
			Select("1").
			Where("task_collaborators.task_id = tasks.id").
			Where("task_collaborators.user_id = ?", *involvedUserID)
		return query.Where(
			"tasks.created_by = ? OR tasks.assignee_id = ? OR EXISTS (?)",
			*involvedUserID, *involvedUserID, collaboratorSubQuery,
		)
	}
	return query
}

// Update persists task field changes
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task; collaborator rows and audit history persist
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// AddCollaborator inserts a membership row; idempotent under concurrency
func (r *GormTaskRepository) AddCollaborator(taskID, userID uint64) error {
	collaborator := models.TaskCollaborator{
		TaskID: taskID,
		UserID: userID,
	}

	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&collaborator).Error
}

// RemoveCollaborator deletes a membership row
func (r *GormTaskRepository) RemoveCollaborator(taskID, userID uint64) error {
	return r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&models.TaskCollaborator{}).Error
}

// AddAttachment appends an attachment row
func (r *GormTaskRepository) AddAttachment(attachment *models.TaskAttachment) error {
	return r.db.Create(attachment).Error
}

// FindAttachment finds an attachment on a task
func (r *GormTaskRepository) FindAttachment(taskID, attachmentID uint64) (*models.TaskAttachment, error) {
	var attachment models.TaskAttachment
	if err := r.db.Where("task_id = ?", taskID).
		First(&attachment, attachmentID).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// RemoveAttachment soft deletes an attachment
func (r *GormTaskRepository) RemoveAttachment(taskID, attachmentID uint64) error {
	return r.db.Where("task_id = ?", taskID).
		Delete(&models.TaskAttachment{}, attachmentID).Error
}

// CreateSubtask creates a subtask with its collaborator rows
func (r *GormTaskRepository) CreateSubtask(subtask *models.Subtask, collaboratorIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subtask).Error; err != nil {
			return err
		}

		if len(collaboratorIDs) == 0 {
			return nil
		}

		collaborators := make([]models.SubtaskCollaborator, len(collaboratorIDs))
		for i, userID := range collaboratorIDs {
			collaborators[i] = models.SubtaskCollaborator{
				SubtaskID: subtask.ID,
				UserID:    userID,
			}
		}

		return tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&collaborators).Error
	})
}

// FindSubtask finds a subtask under a parent task
func (r *GormTaskRepository) FindSubtask(parentTaskID, subtaskID uint64) (*models.Subtask, error) {
	var subtask models.Subtask
	if err := r.db.Preload("Collaborators").
		Where("parent_task_id = ?", parentTaskID).
		First(&subtask, subtaskID).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

// UpdateSubtask persists subtask changes. When collaboratorIDs is non-nil
// the collaborator rows are replaced within the same transaction.
func (r *GormTaskRepository) UpdateSubtask(subtask *models.Subtask, collaboratorIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(subtask).Error; err != nil {
			return err
		}

		if collaboratorIDs == nil {
			return nil
		}

		if err := tx.Where("subtask_id = ?", subtask.ID).
			Delete(&models.SubtaskCollaborator{}).Error; err != nil {
			return err
		}

		if len(collaboratorIDs) == 0 {
			return nil
		}

		collaborators := make([]models.SubtaskCollaborator, len(collaboratorIDs))
		for i, userID := range collaboratorIDs {
			collaborators[i] = models.SubtaskCollaborator{
				SubtaskID: subtask.ID,
				UserID:    userID,
			}
		}

		return tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&collaborators).Error
	})
}

// CountByStatus buckets non-deleted tasks by status within the scope
func (r *GormTaskRepository) CountByStatus(filter TaskMetricsFilter) (map[models.TaskStatus]int64, error) {
	type statusCount struct {
		Status models.TaskStatus
		Count  int64
	}

	query := r.db.Model(&models.Task{}).
		Select("tasks.status AS status, COUNT(*) AS count").
		Group("tasks.status")
	query = applyTaskScope(r.db, query, filter.CreatorDepartmentID, filter.CreatorTeamID, filter.InvolvedUserID)

	var rows []statusCount
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		buckets[row.Status] = row.Count
	}

	return buckets, nil
}
