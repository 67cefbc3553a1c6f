package services

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
)

// Snapshot captures the fields an operation touched, keyed by field name.
// Only changed fields belong in a snapshot, not whole entities.
type Snapshot map[string]interface{}

// ActivityService records one audit entry per mutating operation. Recording
// runs after the domain mutation has been committed: a failed audit write is
// reported through the logger and never rolls back the mutation.
type ActivityService struct {
	activityRepo repository.ActivityLogRepository
	logger       *logrus.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo repository.ActivityLogRepository, logger *logrus.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Record appends an audit entry with before/after snapshots. Best effort:
// errors are logged, not returned.
func (s *ActivityService) Record(actorID uint64, resourceType string, resourceID uint64, action models.ActivityAction, before, after Snapshot) {
	details, err := json.Marshal(map[string]Snapshot{
		"before": before,
		"after":  after,
	})
	if err != nil {
		s.report(actorID, resourceType, resourceID, action, err)
		return
	}

	entry := &models.ActivityLog{
		ResourceID:   resourceID,
		ResourceType: resourceType,
		ActorID:      actorID,
		Action:       action,
		Details:      string(details),
	}

	if err := s.activityRepo.Create(entry); err != nil {
		s.report(actorID, resourceType, resourceID, action, err)
	}
}

// History returns the audit trail of a resource, newest first.
func (s *ActivityService) History(resourceType string, resourceID uint64) ([]models.ActivityLog, error) {
	entries, err := s.activityRepo.ListByResource(resourceType, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

func (s *ActivityService) report(actorID uint64, resourceType string, resourceID uint64, action models.ActivityAction, err error) {
	s.logger.WithError(err).WithFields(logrus.Fields{
		"actor_id":      actorID,
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"action":        action,
	}).Error("failed to record activity log")
}
