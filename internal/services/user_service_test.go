package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

// SetupTest runs before each test
func (suite *UserServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	userRepo := repository.NewUserRepository(suite.db)
	activity := NewActivityService(repository.NewActivityLogRepository(suite.db), newTestLogger())
	suite.service = NewUserService(userRepo, activity)
}

// TearDownTest runs after each test
func (suite *UserServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserServiceTestSuite) TestAssignRoleRestrictedToHR() {
	hr := createTestUser(suite.T(), suite.db, "hr", models.RoleHR, nil, nil)
	manager := createTestUser(suite.T(), suite.db, "manager", models.RoleManager, nil, nil)
	staff := createTestUser(suite.T(), suite.db, "staff", models.RoleStaff, nil, nil)

	_, err := suite.service.AssignRole(staff.ID, models.RoleManager, manager)
	suite.ErrorIs(err, ErrRoleAssignForbidden)

	promoted, err := suite.service.AssignRole(staff.ID, models.RoleManager, hr)
	suite.Require().NoError(err)
	suite.Equal(models.RoleManager, promoted.Role)
}

func (suite *UserServiceTestSuite) TestAssignRoleValidation() {
	hr := createTestUser(suite.T(), suite.db, "hr", models.RoleHR, nil, nil)
	staff := createTestUser(suite.T(), suite.db, "staff", models.RoleStaff, nil, nil)

	_, err := suite.service.AssignRole(staff.ID, "ceo", hr)
	suite.ErrorIs(err, ErrInvalidRole)

	_, err = suite.service.AssignRole(9999, models.RoleManager, hr)
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *UserServiceTestSuite) TestAssignRoleWritesAuditTrail() {
	hr := createTestUser(suite.T(), suite.db, "hr", models.RoleHR, nil, nil)
	staff := createTestUser(suite.T(), suite.db, "staff", models.RoleStaff, nil, nil)

	_, err := suite.service.AssignRole(staff.ID, models.RoleManager, hr)
	suite.Require().NoError(err)

	// Re-assigning the same role is a no-op and writes nothing.
	_, err = suite.service.AssignRole(staff.ID, models.RoleManager, hr)
	suite.Require().NoError(err)

	var logs []models.ActivityLog
	suite.Require().NoError(suite.db.
		Where("resource_type = ? AND resource_id = ?", models.ResourceUser, staff.ID).
		Find(&logs).Error)
	suite.Require().Len(logs, 1)
	suite.Equal(models.ActionRoleAssigned, logs[0].Action)
	suite.Equal(hr.ID, logs[0].ActorID)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
