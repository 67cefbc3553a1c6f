package models

import "time"

// ActivityAction tags an audit record. The set is closed; new actions are
// added here, never inlined as strings at call sites.
type ActivityAction string

const (
	ActionCreated             ActivityAction = "created"
	ActionUpdated             ActivityAction = "updated"
	ActionDeleted             ActivityAction = "deleted"
	ActionArchived            ActivityAction = "archived"
	ActionUnarchived          ActivityAction = "unarchived"
	ActionStatusChanged       ActivityAction = "status_changed"
	ActionAssigned            ActivityAction = "assigned"
	ActionCollaboratorAdded   ActivityAction = "collaborator_added"
	ActionCollaboratorRemoved ActivityAction = "collaborator_removed"
	ActionAttachmentAdded     ActivityAction = "attachment_added"
	ActionAttachmentRemoved   ActivityAction = "attachment_removed"
	ActionSubtaskAdded        ActivityAction = "subtask_added"
	ActionRoleAssigned        ActivityAction = "role_assigned"
)

// Resource types for audit records.
const (
	ResourceProject = "project"
	ResourceTask    = "task"
	ResourceSubtask = "subtask"
	ResourceUser    = "user"
)

// ActivityLog is an append-only audit record. Rows are never updated or
// deleted by this service; retention is an external concern.
type ActivityLog struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	ResourceID   uint64         `gorm:"not null;index:idx_activity_resource" json:"resource_id"`
	ResourceType string         `gorm:"type:varchar(20);not null;index:idx_activity_resource" json:"resource_type"`
	ActorID      uint64         `gorm:"not null;index" json:"actor_id"`
	Action       ActivityAction `gorm:"type:varchar(30);not null" json:"action"`
	// Details holds a JSON object {"before": ..., "after": ...} limited to
	// the fields the operation touched.
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
