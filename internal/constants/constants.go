package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Auth
const (
	SessionCookieName = "workdeck_session"
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Task priority bounds (only meaningful for tasks linked to a project)
const (
	MinTaskPriority = 1
	MaxTaskPriority = 10
)
