package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectIsOverdue(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	t.Run("no deadline yields nil", func(t *testing.T) {
		p := &Project{}
		assert.Nil(t, p.IsOverdue())
	})

	t.Run("past deadline", func(t *testing.T) {
		p := &Project{Deadline: &past}
		overdue := p.IsOverdue()
		require.NotNil(t, overdue)
		assert.True(t, *overdue)
	})

	t.Run("future deadline", func(t *testing.T) {
		p := &Project{Deadline: &future}
		overdue := p.IsOverdue()
		require.NotNil(t, overdue)
		assert.False(t, *overdue)
	})

	t.Run("archived projects are never overdue", func(t *testing.T) {
		p := &Project{Deadline: &past, IsArchived: true}
		overdue := p.IsOverdue()
		require.NotNil(t, overdue)
		assert.False(t, *overdue)
	})
}

func TestProjectCanBeAccessedBy(t *testing.T) {
	dept1 := uint64(1)
	dept2 := uint64(2)

	project := &Project{
		ID:           10,
		OwnerID:      1,
		DepartmentID: &dept1,
		Collaborators: []ProjectCollaborator{
			{ProjectID: 10, UserID: 1},
			{ProjectID: 10, UserID: 2},
		},
	}

	assert.True(t, project.CanBeAccessedBy(&User{ID: 1, Role: RoleStaff}), "owner")
	assert.True(t, project.CanBeAccessedBy(&User{ID: 2, Role: RoleStaff}), "collaborator")
	assert.True(t, project.CanBeAccessedBy(&User{ID: 3, Role: RoleHR}), "hr sees everything")
	assert.True(t, project.CanBeAccessedBy(&User{ID: 3, Role: RoleSM}), "sm sees everything")
	assert.True(t, project.CanBeAccessedBy(&User{ID: 3, Role: RoleDirector, DepartmentID: &dept1}), "director in department")
	assert.False(t, project.CanBeAccessedBy(&User{ID: 3, Role: RoleDirector, DepartmentID: &dept2}), "director in other department")
	assert.False(t, project.CanBeAccessedBy(&User{ID: 3, Role: RoleDirector}), "director without department")
	assert.False(t, project.CanBeAccessedBy(&User{ID: 3, Role: RoleStaff}), "unrelated staff")
}

func TestProjectCanBeModifiedBy(t *testing.T) {
	project := &Project{ID: 10, OwnerID: 1}

	assert.True(t, project.CanBeModifiedBy(&User{ID: 1, Role: RoleStaff}), "owner")
	assert.True(t, project.CanBeModifiedBy(&User{ID: 2, Role: RoleManager}), "manager")
	assert.True(t, project.CanBeModifiedBy(&User{ID: 2, Role: RoleSM}), "sm")
	assert.False(t, project.CanBeModifiedBy(&User{ID: 2, Role: RoleStaff}), "unrelated staff")
	assert.False(t, project.CanBeModifiedBy(&User{ID: 2, Role: RoleHR}), "hr cannot modify")
}
