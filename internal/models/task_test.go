package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collaboratedTask() *Task {
	assignee := uint64(2)
	return &Task{
		ID:         20,
		CreatedBy:  1,
		AssigneeID: &assignee,
		Collaborators: []TaskCollaborator{
			{TaskID: 20, UserID: 1},
			{TaskID: 20, UserID: 3},
		},
	}
}

func TestTaskCanBeCompletedBy(t *testing.T) {
	task := collaboratedTask()

	assert.True(t, task.CanBeCompletedBy(&User{ID: 1, Role: RoleStaff}), "creator")
	assert.True(t, task.CanBeCompletedBy(&User{ID: 2, Role: RoleStaff}), "assignee")
	assert.True(t, task.CanBeCompletedBy(&User{ID: 3, Role: RoleStaff}), "collaborator")
	assert.False(t, task.CanBeCompletedBy(&User{ID: 4, Role: RoleManager}), "outsider manager")
}

func TestTaskCanBeAssignedBy(t *testing.T) {
	task := collaboratedTask()

	assert.True(t, task.CanBeAssignedBy(&User{ID: 4, Role: RoleManager}))
	assert.True(t, task.CanBeAssignedBy(&User{ID: 4, Role: RoleDirector}))
	assert.True(t, task.CanBeAssignedBy(&User{ID: 4, Role: RoleSM}))
	assert.False(t, task.CanBeAssignedBy(&User{ID: 1, Role: RoleStaff}), "even the creator when staff")
	assert.False(t, task.CanBeAssignedBy(&User{ID: 4, Role: RoleHR}))
}

func TestTaskCanBeEditedBy(t *testing.T) {
	task := collaboratedTask()

	assert.True(t, task.CanBeEditedBy(&User{ID: 1, Role: RoleStaff}), "staff creator")
	assert.False(t, task.CanBeEditedBy(&User{ID: 3, Role: RoleStaff}), "staff collaborator who is not creator")
	assert.True(t, task.CanBeEditedBy(&User{ID: 3, Role: RoleManager}), "manager collaborator")
	assert.False(t, task.CanBeEditedBy(&User{ID: 4, Role: RoleManager}), "manager outside the collaborator set")
	assert.False(t, task.CanBeEditedBy(&User{ID: 4, Role: RoleHR}), "hr")
}

func TestTaskCanRemoveAttachment(t *testing.T) {
	task := collaboratedTask()

	assert.True(t, task.CanRemoveAttachment(&User{ID: 1, Role: RoleStaff}), "creator")
	assert.True(t, task.CanRemoveAttachment(&User{ID: 3, Role: RoleManager}), "manager collaborator")
	assert.False(t, task.CanRemoveAttachment(&User{ID: 4, Role: RoleManager}), "manager outside the task")
	assert.False(t, task.CanRemoveAttachment(&User{ID: 3, Role: RoleStaff}), "plain collaborator")
}

func TestAllSubtasksCompleted(t *testing.T) {
	task := &Task{}
	assert.True(t, task.AllSubtasksCompleted(), "no subtasks")

	task.Subtasks = []Subtask{
		{Status: TaskStatusCompleted},
		{Status: TaskStatusOngoing},
	}
	assert.False(t, task.AllSubtasksCompleted())

	task.Subtasks[1].Status = TaskStatusCompleted
	assert.True(t, task.AllSubtasksCompleted())
}
