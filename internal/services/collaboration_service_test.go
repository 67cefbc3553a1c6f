package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	apperrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

// CollaborationServiceTestSuite defines the test suite for CollaborationService
type CollaborationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CollaborationService
}

// SetupTest runs before each test
func (suite *CollaborationServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewCollaborationService(repository.NewUserRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *CollaborationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CollaborationServiceTestSuite) TestValidateCollaboratorsSameDepartment() {
	dept := createTestDepartment(suite.T(), suite.db, "Engineering")
	a := createTestUser(suite.T(), suite.db, "alice", models.RoleStaff, &dept.ID, nil)
	b := createTestUser(suite.T(), suite.db, "bob", models.RoleStaff, &dept.ID, nil)

	err := suite.service.ValidateCollaborators([]uint64{a.ID, b.ID}, &dept.ID)
	suite.NoError(err)
}

func (suite *CollaborationServiceTestSuite) TestValidateCollaboratorsRejectsOtherDepartment() {
	eng := createTestDepartment(suite.T(), suite.db, "Engineering")
	sales := createTestDepartment(suite.T(), suite.db, "Sales")
	outsider := createTestUser(suite.T(), suite.db, "carol", models.RoleStaff, &sales.ID, nil)

	err := suite.service.ValidateCollaborators([]uint64{outsider.ID}, &eng.ID)
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
}

func (suite *CollaborationServiceTestSuite) TestValidateCollaboratorsWithoutDepartmentIsPermissive() {
	eng := createTestDepartment(suite.T(), suite.db, "Engineering")
	freelancer := createTestUser(suite.T(), suite.db, "dave", models.RoleStaff, nil, nil)

	// A user with no department on record passes any department scope.
	suite.NoError(suite.service.ValidateCollaborators([]uint64{freelancer.ID}, &eng.ID))

	// And a nil scoping department passes everyone.
	sales := createTestDepartment(suite.T(), suite.db, "Sales")
	eve := createTestUser(suite.T(), suite.db, "eve", models.RoleStaff, &sales.ID, nil)
	suite.NoError(suite.service.ValidateCollaborators([]uint64{eve.ID}, nil))
}

func (suite *CollaborationServiceTestSuite) TestValidateCollaboratorsUnknownUser() {
	err := suite.service.ValidateCollaborators([]uint64{9999}, nil)
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
	suite.Contains(err.Error(), "9999")
}

func (suite *CollaborationServiceTestSuite) TestValidateDepartmentMembership() {
	one := uint64(1)
	two := uint64(2)

	suite.NoError(suite.service.ValidateDepartmentMembership(nil, &one))
	suite.NoError(suite.service.ValidateDepartmentMembership(&one, nil))
	suite.NoError(suite.service.ValidateDepartmentMembership(&one, &one))
	suite.Error(suite.service.ValidateDepartmentMembership(&one, &two))
}

func TestCollaborationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CollaborationServiceTestSuite))
}
