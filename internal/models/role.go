package models

// Role is the single role a user carries. Every access decision in the
// codebase goes through the predicates below; no other package compares
// role values directly.
type Role string

const (
	RoleStaff    Role = "staff"
	RoleManager  Role = "manager"
	RoleDirector Role = "director"
	RoleSM       Role = "sm"
	RoleHR       Role = "hr"
)

// ValidRole reports whether r is one of the known role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleStaff, RoleManager, RoleDirector, RoleSM, RoleHR:
		return true
	}
	return false
}

// CanAssignTasks reports whether the role may assign tasks to users.
func (r Role) CanAssignTasks() bool {
	return r == RoleManager || r == RoleDirector || r == RoleSM
}

// CanSeeAllTasks reports whether the role has organization-wide visibility.
func (r Role) CanSeeAllTasks() bool {
	return r == RoleHR || r == RoleSM
}

// CanSeeDepartmentTasks reports whether the role sees its whole department.
func (r Role) CanSeeDepartmentTasks() bool {
	return r == RoleDirector
}

// CanSeeTeamTasks reports whether the role sees its whole team.
func (r Role) CanSeeTeamTasks() bool {
	return r == RoleManager
}

// IsManager reports whether the role carries managerial capabilities.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleDirector || r == RoleSM
}

// IsStaff reports whether the role is plain staff.
func (r Role) IsStaff() bool {
	return r == RoleStaff
}

// IsHR reports whether the role is HR.
func (r Role) IsHR() bool {
	return r == RoleHR
}
