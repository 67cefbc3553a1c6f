package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/workdeck/workdeck-api/internal/constants"
	apperrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"github.com/workdeck/workdeck-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound             = apperrors.NotFoundf("task not found")
	ErrSubtaskNotFound          = apperrors.NotFoundf("subtask not found")
	ErrAttachmentNotFound       = apperrors.NotFoundf("attachment not found")
	ErrTaskTitleRequired        = apperrors.Validationf("title is required")
	ErrInvalidTaskStatus        = apperrors.Validationf("invalid task status")
	ErrPriorityRequired         = apperrors.Validationf("a task linked to a project requires a priority")
	ErrPriorityOutOfRange       = apperrors.Validationf("priority must be between 1 and 10")
	ErrInvalidRecurringInterval = apperrors.Validationf("recurring interval must be a positive number of days")
	ErrSubtaskCollaborators     = apperrors.Validationf("subtask collaborators must be a subset of the parent task's collaborators")
	ErrTaskCollaboratorsSubset  = apperrors.Validationf("task collaborators must be a subset of the project's collaborators")
	ErrTaskViewForbidden        = apperrors.Forbiddenf("user may not view this task")
	ErrTaskEditForbidden        = apperrors.Forbiddenf("user may not edit this task")
	ErrStaffRestrictedFields    = apperrors.Forbiddenf("staff may only edit title, due date and collaborators")
	ErrAssignForbidden          = apperrors.Forbiddenf("user may not assign tasks")
	ErrStatusChangeForbidden    = apperrors.Forbiddenf("user may not change this task's status")
	ErrAttachmentForbidden      = apperrors.Forbiddenf("user may not remove this attachment")
	ErrSubtasksIncomplete       = apperrors.Conflictf("all subtasks must be completed")
)

// TaskService handles task business logic: lifecycle, assignment,
// collaborators, attachments, subtasks and recurrence.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	collab      *CollaborationService
	activity    *ActivityService
	logger      *logrus.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	collab *CollaborationService,
	activity *ActivityService,
	logger *logrus.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		collab:      collab,
		activity:    activity,
		logger:      logger,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title             string
	Description       string
	Status            models.TaskStatus
	DueDate           *time.Time
	ProjectID         *uint64
	Priority          *int
	RecurringInterval *int
	CollaboratorIDs   []uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	DueDate           *time.Time
	ClearDueDate      bool
	ProjectID         *uint64
	Priority          *int
	RecurringInterval *int
	ClearRecurring    bool
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ProjectID     *uint64
	Status        *models.TaskStatus
	DueToday      bool
	SortByDueDate bool
	Page          int
	PageSize      int
}

// CreateSubtaskInput represents input for creating a subtask
type CreateSubtaskInput struct {
	Title           string
	CollaboratorIDs []uint64
}

// UpdateSubtaskInput represents input for updating a subtask. A nil
// CollaboratorIDs leaves the collaborator set untouched.
type UpdateSubtaskInput struct {
	Title           *string
	Status          *models.TaskStatus
	CollaboratorIDs []uint64
}

// AddAttachmentInput represents input for attaching a file reference
type AddAttachmentInput struct {
	Filename   string
	StorageRef string
}

// taskPreloads is the default preload set for single-task reads.
var taskPreloads = []string{"Creator", "Assignee", "Project", "Collaborators", "Collaborators.User", "Attachments", "Subtasks"}

// CreateTask creates a task. A project-linked task requires a priority, its
// collaborators must be a subset of the project's, and the creator is added
// to the project's collaborator set as a side effect.
func (s *TaskService) CreateTask(input CreateTaskInput, creator *models.User) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusUnassigned
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	if input.RecurringInterval != nil && *input.RecurringInterval <= 0 {
		return nil, ErrInvalidRecurringInterval
	}
	if input.Priority != nil && (*input.Priority < constants.MinTaskPriority || *input.Priority > constants.MaxTaskPriority) {
		return nil, ErrPriorityOutOfRange
	}

	departmentID := creator.DepartmentID
	var project *models.Project
	if input.ProjectID != nil {
		if input.Priority == nil {
			return nil, ErrPriorityRequired
		}

		var err error
		project, err = s.projectRepo.FindByID(*input.ProjectID, "Collaborators")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		departmentID = project.DepartmentID

		for _, id := range input.CollaboratorIDs {
			if !project.HasCollaborator(id) {
				return nil, ErrTaskCollaboratorsSubset
			}
		}
	}

	if err := s.collab.ValidateCollaborators(input.CollaboratorIDs, departmentID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		DueDate:           input.DueDate,
		CreatedBy:         creator.ID,
		ProjectID:         input.ProjectID,
		Priority:          input.Priority,
		RecurringInterval: input.RecurringInterval,
	}

	collaboratorIDs := uniqueUint64(append([]uint64{creator.ID}, input.CollaboratorIDs...))

	if err := s.taskRepo.Create(task, collaboratorIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if project != nil {
		// Creating a task inside a project pulls the creator into the
		// project's collaborator set and marks the project non-empty.
		if err := s.projectRepo.AddCollaborator(project.ID, creator.ID); err != nil {
			return nil, fmt.Errorf("failed to add creator to project collaborators: %w", err)
		}
		if err := s.projectRepo.MarkHasTasks(project.ID); err != nil {
			return nil, fmt.Errorf("failed to flag project tasks: %w", err)
		}
	}

	s.activity.Record(creator.ID, models.ResourceTask, task.ID, models.ActionCreated, nil, Snapshot{
		"title":         task.Title,
		"status":        task.Status,
		"project_id":    task.ProjectID,
		"collaborators": collaboratorIDs,
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// GetTask returns a task if the actor may view it
func (s *TaskService) GetTask(taskID uint64, actor *models.User) (*models.Task, error) {
	task, err := s.findTask(taskID, taskPreloads...)
	if err != nil {
		return nil, err
	}

	if !task.CanBeViewedBy(actor) {
		return nil, ErrTaskViewForbidden
	}

	return task, nil
}

// ListTasks returns tasks within the actor's visibility scope
func (s *TaskService) ListTasks(input ListTasksInput, actor *models.User) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		ProjectID:     input.ProjectID,
		Status:        input.Status,
		SortByDueDate: input.SortByDueDate,
		Page:          input.Page,
		PageSize:      input.PageSize,
	}
	applyVisibilityScope(&filter, actor)

	if input.DueToday {
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)
		filter.DueDateFrom = &startOfDay
		filter.DueDateTo = &endOfDay
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// applyVisibilityScope narrows a filter by the actor's role. Roles with a
// wider scope but no department/team on record fall back to their own tasks.
func applyVisibilityScope(filter *repository.TaskFilter, actor *models.User) {
	switch {
	case actor.Role.CanSeeAllTasks():
	case actor.Role.CanSeeDepartmentTasks() && actor.DepartmentID != nil:
		filter.CreatorDepartmentID = actor.DepartmentID
	case actor.Role.CanSeeTeamTasks() && actor.TeamID != nil:
		filter.CreatorTeamID = actor.TeamID
	default:
		filter.InvolvedUserID = &actor.ID
	}
}

// UpdateTask updates task fields. Staff may only touch title and due date
// here; project moves require a fresh priority.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput, actor *models.User) (*models.Task, error) {
	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return nil, err
	}

	if !task.CanBeEditedBy(actor) {
		return nil, ErrTaskEditForbidden
	}

	if actor.Role.IsStaff() {
		if input.Description != nil || input.ProjectID != nil || input.Priority != nil ||
			input.RecurringInterval != nil || input.ClearRecurring {
			return nil, ErrStaffRestrictedFields
		}
	}

	before := Snapshot{}
	after := Snapshot{}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleRequired
		}
		before["title"], after["title"] = task.Title, *input.Title
		task.Title = *input.Title
	}
	if input.Description != nil {
		before["description"], after["description"] = task.Description, *input.Description
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		before["due_date"], after["due_date"] = task.DueDate, nil
		task.DueDate = nil
	} else if input.DueDate != nil {
		before["due_date"], after["due_date"] = task.DueDate, input.DueDate
		task.DueDate = input.DueDate
	}

	if input.ProjectID != nil {
		// Re-linking a task to a project always needs a fresh priority.
		if input.Priority == nil {
			return nil, ErrPriorityRequired
		}

		project, err := s.projectRepo.FindByID(*input.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}

		before["project_id"], after["project_id"] = task.ProjectID, input.ProjectID
		task.ProjectID = input.ProjectID

		if err := s.projectRepo.MarkHasTasks(project.ID); err != nil {
			return nil, fmt.Errorf("failed to flag project tasks: %w", err)
		}
	}

	if input.Priority != nil {
		if *input.Priority < constants.MinTaskPriority || *input.Priority > constants.MaxTaskPriority {
			return nil, ErrPriorityOutOfRange
		}
		before["priority"], after["priority"] = task.Priority, input.Priority
		task.Priority = input.Priority
	}

	if input.ClearRecurring {
		before["recurring_interval"], after["recurring_interval"] = task.RecurringInterval, nil
		task.RecurringInterval = nil
	} else if input.RecurringInterval != nil {
		if *input.RecurringInterval <= 0 {
			return nil, ErrInvalidRecurringInterval
		}
		before["recurring_interval"], after["recurring_interval"] = task.RecurringInterval, input.RecurringInterval
		task.RecurringInterval = input.RecurringInterval
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, task.ID, models.ActionUpdated, before, after)

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask soft deletes a task. Collaborator rows and audit history
// remain behind the soft-delete flag.
func (s *TaskService) DeleteTask(taskID uint64, actor *models.User) error {
	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return err
	}

	if !task.CanBeEditedBy(actor) {
		return ErrTaskEditForbidden
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, taskID, models.ActionDeleted, Snapshot{"title": task.Title}, nil)

	return nil
}

// AssignTask sets the assignee and activates the task: assignment always
// forces the status to ongoing.
func (s *TaskService) AssignTask(taskID, assigneeID uint64, actor *models.User) (*models.Task, error) {
	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return nil, err
	}

	if !task.CanBeAssignedBy(actor) {
		return nil, ErrAssignForbidden
	}

	if _, err := s.userRepo.FindByID(assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("assignee %d not found", assigneeID)
		}
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}

	before := Snapshot{"assignee_id": task.AssigneeID, "status": task.Status}

	task.AssigneeID = &assigneeID
	applyStatusTransition(task, models.TaskStatusOngoing, actor.ID, time.Now())

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, task.ID, models.ActionAssigned, before, Snapshot{
		"assignee_id": assigneeID,
		"status":      models.TaskStatusOngoing,
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateStatus moves a task to the given status. Any status is reachable
// from any other, except that completion is blocked while subtasks remain
// open. Entering completed on a recurring task schedules the next
// occurrence exactly once.
func (s *TaskService) UpdateStatus(taskID uint64, status models.TaskStatus, actor *models.User) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findTask(taskID, "Collaborators", "Subtasks")
	if err != nil {
		return nil, err
	}

	if !task.CanBeCompletedBy(actor) {
		return nil, ErrStatusChangeForbidden
	}

	if status == models.TaskStatusCompleted {
		if task.Status == models.TaskStatusCompleted {
			// Re-completing is a no-op; in particular it must never
			// regenerate a recurring successor.
			return task, nil
		}
		if !task.AllSubtasksCompleted() {
			return nil, ErrSubtasksIncomplete
		}
	}

	before := Snapshot{"status": task.Status}
	entering := status == models.TaskStatusCompleted

	applyStatusTransition(task, status, actor.ID, time.Now())

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, task.ID, models.ActionStatusChanged, before, Snapshot{"status": status})

	if entering && task.RecurringInterval != nil && *task.RecurringInterval > 0 {
		s.generateNextOccurrence(task, actor)
	}

	return task, nil
}

// generateNextOccurrence creates the successor of a completed recurring
// task. The new due date is anchored on the completed task's due date, not
// on the completion time, so the schedule never drifts. Failure is
// reported but the completed status stands.
func (s *TaskService) generateNextOccurrence(task *models.Task, actor *models.User) {
	interval := *task.RecurringInterval

	anchor := time.Now()
	if task.DueDate != nil {
		anchor = *task.DueDate
	}
	nextDue := anchor.AddDate(0, 0, interval)

	next := &models.Task{
		Title:             task.Title,
		Description:       task.Description,
		Status:            models.TaskStatusUnassigned,
		DueDate:           &nextDue,
		CreatedBy:         task.CreatedBy,
		RecurringInterval: task.RecurringInterval,
	}

	collaboratorIDs := make([]uint64, 0, len(task.Collaborators))
	for _, c := range task.Collaborators {
		collaboratorIDs = append(collaboratorIDs, c.UserID)
	}

	if err := s.taskRepo.Create(next, collaboratorIDs); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"task_id":  task.ID,
			"interval": interval,
		}).Error("failed to generate next occurrence of recurring task")
		return
	}

	s.activity.Record(actor.ID, models.ResourceTask, next.ID, models.ActionCreated, nil, Snapshot{
		"title":              next.Title,
		"due_date":           next.DueDate,
		"recurring_interval": interval,
	})
}

// AddCollaborator adds a user to the task's collaborator set; idempotent.
func (s *TaskService) AddCollaborator(taskID, userID uint64, actor *models.User) error {
	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return err
	}

	if !task.CanBeEditedBy(actor) {
		return ErrTaskEditForbidden
	}

	var departmentID *uint64
	if task.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*task.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to find project: %w", err)
		}
		departmentID = project.DepartmentID
	}

	if err := s.collab.ValidateCollaborators([]uint64{userID}, departmentID); err != nil {
		return err
	}

	if err := s.taskRepo.AddCollaborator(taskID, userID); err != nil {
		return fmt.Errorf("failed to add collaborator: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, taskID, models.ActionCollaboratorAdded, nil, Snapshot{"user_id": userID})

	return nil
}

// RemoveCollaborator removes a user from the task's collaborator set.
func (s *TaskService) RemoveCollaborator(taskID, userID uint64, actor *models.User) error {
	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return err
	}

	if !task.CanBeEditedBy(actor) {
		return ErrTaskEditForbidden
	}

	if err := s.taskRepo.RemoveCollaborator(taskID, userID); err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, taskID, models.ActionCollaboratorRemoved, Snapshot{"user_id": userID}, nil)

	return nil
}

// AddAttachment records a file reference on the task. Anyone working on
// the task (creator, assignee, collaborator) may attach.
func (s *TaskService) AddAttachment(taskID uint64, input AddAttachmentInput, actor *models.User) (*models.TaskAttachment, error) {
	if input.Filename == "" {
		return nil, apperrors.Validationf("filename is required")
	}

	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return nil, err
	}

	if !task.CanBeCompletedBy(actor) {
		return nil, ErrTaskEditForbidden
	}

	storageRef := input.StorageRef
	if storageRef == "" {
		storageRef = utils.NewStorageRef()
	}

	attachment := &models.TaskAttachment{
		TaskID:     taskID,
		Filename:   input.Filename,
		StorageRef: storageRef,
		UploadedBy: actor.ID,
		UploadedAt: time.Now(),
	}

	if err := s.taskRepo.AddAttachment(attachment); err != nil {
		return nil, fmt.Errorf("failed to add attachment: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, taskID, models.ActionAttachmentAdded, nil, Snapshot{
		"filename":    attachment.Filename,
		"storage_ref": attachment.StorageRef,
	})

	return attachment, nil
}

// RemoveAttachment removes an attachment: the task creator, or a manager
// who is also a collaborator.
func (s *TaskService) RemoveAttachment(taskID, attachmentID uint64, actor *models.User) error {
	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return err
	}

	if !task.CanRemoveAttachment(actor) {
		return ErrAttachmentForbidden
	}

	attachment, err := s.taskRepo.FindAttachment(taskID, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}

	if err := s.taskRepo.RemoveAttachment(taskID, attachmentID); err != nil {
		return fmt.Errorf("failed to remove attachment: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, taskID, models.ActionAttachmentRemoved, Snapshot{
		"filename":    attachment.Filename,
		"storage_ref": attachment.StorageRef,
	}, nil)

	return nil
}

// CreateSubtask creates a subtask under a task. Subtask collaborators must
// be a subset of the parent task's collaborators.
func (s *TaskService) CreateSubtask(taskID uint64, input CreateSubtaskInput, actor *models.User) (*models.Subtask, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return nil, err
	}

	if !task.CanBeCompletedBy(actor) {
		return nil, ErrTaskEditForbidden
	}

	if err := validateSubtaskCollaborators(task, input.CollaboratorIDs); err != nil {
		return nil, err
	}

	subtask := &models.Subtask{
		ParentTaskID: taskID,
		Title:        input.Title,
		Status:       models.TaskStatusUnassigned,
	}

	if err := s.taskRepo.CreateSubtask(subtask, uniqueUint64(input.CollaboratorIDs)); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}

	s.activity.Record(actor.ID, models.ResourceTask, taskID, models.ActionSubtaskAdded, nil, Snapshot{
		"subtask_id": subtask.ID,
		"title":      subtask.Title,
	})

	return subtask, nil
}

// UpdateSubtask updates a subtask, re-validating the collaborator subset
// constraint on every change.
func (s *TaskService) UpdateSubtask(taskID, subtaskID uint64, input UpdateSubtaskInput, actor *models.User) (*models.Subtask, error) {
	task, err := s.findTask(taskID, "Collaborators")
	if err != nil {
		return nil, err
	}

	if !task.CanBeCompletedBy(actor) {
		return nil, ErrTaskEditForbidden
	}

	subtask, err := s.taskRepo.FindSubtask(taskID, subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("failed to find subtask: %w", err)
	}

	if input.CollaboratorIDs != nil {
		if err := validateSubtaskCollaborators(task, input.CollaboratorIDs); err != nil {
			return nil, err
		}
	}

	before := Snapshot{}
	after := Snapshot{}
	statusChanged := false

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleRequired
		}
		before["title"], after["title"] = subtask.Title, *input.Title
		subtask.Title = *input.Title
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		statusChanged = subtask.Status != *input.Status
		before["status"], after["status"] = subtask.Status, *input.Status
		subtask.Status = *input.Status
	}

	var collaboratorIDs []uint64
	if input.CollaboratorIDs != nil {
		collaboratorIDs = uniqueUint64(input.CollaboratorIDs)
		before["collaborators"] = collaboratorUserIDs(subtask.Collaborators)
		after["collaborators"] = collaboratorIDs
	}

	if err := s.taskRepo.UpdateSubtask(subtask, collaboratorIDs); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}

	action := models.ActionUpdated
	if statusChanged {
		action = models.ActionStatusChanged
	}
	s.activity.Record(actor.ID, models.ResourceSubtask, subtask.ID, action, before, after)

	return subtask, nil
}

func validateSubtaskCollaborators(parent *models.Task, candidateIDs []uint64) error {
	for _, id := range candidateIDs {
		if !parent.HasCollaborator(id) {
			return ErrSubtaskCollaborators
		}
	}
	return nil
}

func collaboratorUserIDs(collaborators []models.SubtaskCollaborator) []uint64 {
	ids := make([]uint64, 0, len(collaborators))
	for _, c := range collaborators {
		ids = append(ids, c.UserID)
	}
	return ids
}

func (s *TaskService) findTask(taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// applyStatusTransition overwrites the task's status and its latest
// transition record. This is the only place status history is written.
func applyStatusTransition(task *models.Task, status models.TaskStatus, actorID uint64, now time.Time) {
	task.Status = status
	task.LastStatus = &status
	task.LastStatusUpdatedBy = &actorID
	task.LastStatusUpdatedAt = &now
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
