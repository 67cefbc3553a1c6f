package services

import (
	"fmt"

	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
)

// StatusBuckets holds task counts per status within a visibility scope.
type StatusBuckets map[models.TaskStatus]int64

// DashboardMetrics is the read-side summary for one actor.
type DashboardMetrics struct {
	TaskBuckets     StatusBuckets `json:"task_buckets"`
	OverdueProjects int           `json:"overdue_projects"`
}

// MetricsService aggregates tasks into status buckets scoped by the
// actor's role: everything for hr/sm, the department for directors, the
// team for managers, and the user's own tasks otherwise.
type MetricsService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *MetricsService {
	return &MetricsService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// TaskStatusBuckets counts the actor's visible tasks per status. Every
// status appears in the result, zero-valued when empty.
func (s *MetricsService) TaskStatusBuckets(actor *models.User) (StatusBuckets, error) {
	filter := repository.TaskMetricsFilter{}

	switch {
	case actor.Role.CanSeeAllTasks():
	case actor.Role.CanSeeDepartmentTasks() && actor.DepartmentID != nil:
		filter.CreatorDepartmentID = actor.DepartmentID
	case actor.Role.CanSeeTeamTasks() && actor.TeamID != nil:
		filter.CreatorTeamID = actor.TeamID
	default:
		filter.InvolvedUserID = &actor.ID
	}

	counts, err := s.taskRepo.CountByStatus(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}

	buckets := StatusBuckets{
		models.TaskStatusUnassigned:  0,
		models.TaskStatusOngoing:     0,
		models.TaskStatusUnderReview: 0,
		models.TaskStatusCompleted:   0,
	}
	for status, count := range counts {
		buckets[status] = count
	}

	return buckets, nil
}

// Dashboard returns the status buckets together with the number of
// overdue projects visible to the actor.
func (s *MetricsService) Dashboard(actor *models.User) (*DashboardMetrics, error) {
	buckets, err := s.TaskStatusBuckets(actor)
	if err != nil {
		return nil, err
	}

	filter := repository.ProjectFilter{}
	switch {
	case actor.Role.CanSeeAllTasks():
	case actor.Role.CanSeeDepartmentTasks():
		filter.VisibleToUserID = &actor.ID
		filter.DepartmentID = actor.DepartmentID
	default:
		filter.VisibleToUserID = &actor.ID
	}

	projects, _, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	overdue := 0
	for i := range projects {
		if o := projects[i].IsOverdue(); o != nil && *o {
			overdue++
		}
	}

	return &DashboardMetrics{
		TaskBuckets:     buckets,
		OverdueProjects: overdue,
	}, nil
}
