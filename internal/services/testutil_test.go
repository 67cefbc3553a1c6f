package services

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/workdeck/workdeck-api/internal/database"
	"github.com/workdeck/workdeck-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.MigrateOn(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// newTestLogger returns a silenced logger for tests.
func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.Role, departmentID, teamID *uint64) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         role,
		DepartmentID: departmentID,
		TeamID:       teamID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestDepartment(t *testing.T, db *gorm.DB, name string) *models.Department {
	t.Helper()

	dept := &models.Department{Name: name}
	if err := db.Create(dept).Error; err != nil {
		t.Fatalf("failed to create test department: %v", err)
	}
	return dept
}

func projectCollaboratorIDs(t *testing.T, db *gorm.DB, projectID uint64) []uint64 {
	t.Helper()

	var ids []uint64
	if err := db.Model(&models.ProjectCollaborator{}).
		Where("project_id = ?", projectID).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		t.Fatalf("failed to load collaborators: %v", err)
	}
	return ids
}

func taskCollaboratorIDs(t *testing.T, db *gorm.DB, taskID uint64) []uint64 {
	t.Helper()

	var ids []uint64
	if err := db.Model(&models.TaskCollaborator{}).
		Where("task_id = ?", taskID).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		t.Fatalf("failed to load collaborators: %v", err)
	}
	return ids
}
