package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	apperrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProjectService
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	activityRepo := repository.NewActivityLogRepository(suite.db)

	collab := NewCollaborationService(userRepo)
	activity := NewActivityService(activityRepo, newTestLogger())
	suite.service = NewProjectService(projectRepo, collab, activity)
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectServiceTestSuite) TestCreateProjectOwnerJoinsCollaborators() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)
	other := createTestUser(suite.T(), suite.db, "other", models.RoleStaff, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{
		Name:            "Website Relaunch",
		CollaboratorIDs: []uint64{other.ID},
	}, owner)
	suite.Require().NoError(err)

	suite.Equal(owner.ID, project.OwnerID)
	suite.ElementsMatch([]uint64{owner.ID, other.ID}, projectCollaboratorIDs(suite.T(), suite.db, project.ID))
	suite.False(project.HasContainedTasks)
}

func (suite *ProjectServiceTestSuite) TestCreateProjectRequiresName() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)

	_, err := suite.service.CreateProject(CreateProjectInput{}, owner)
	suite.ErrorIs(err, ErrProjectNameRequired)
}

func (suite *ProjectServiceTestSuite) TestCreateProjectRejectsCrossDepartmentCollaborator() {
	eng := createTestDepartment(suite.T(), suite.db, "Engineering")
	sales := createTestDepartment(suite.T(), suite.db, "Sales")
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, &eng.ID, nil)
	outsider := createTestUser(suite.T(), suite.db, "outsider", models.RoleStaff, &sales.ID, nil)

	_, err := suite.service.CreateProject(CreateProjectInput{
		Name:            "Internal Tooling",
		DepartmentID:    &eng.ID,
		CollaboratorIDs: []uint64{outsider.ID},
	}, owner)
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
}

func (suite *ProjectServiceTestSuite) TestAddCollaboratorIsIdempotent() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)
	other := createTestUser(suite.T(), suite.db, "other", models.RoleStaff, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{Name: "Rollout"}, owner)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.AddCollaborator(project.ID, other.ID, owner))
	suite.Require().NoError(suite.service.AddCollaborator(project.ID, other.ID, owner))

	suite.ElementsMatch([]uint64{owner.ID, other.ID}, projectCollaboratorIDs(suite.T(), suite.db, project.ID))
}

func (suite *ProjectServiceTestSuite) TestRemoveCollaborator() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)
	other := createTestUser(suite.T(), suite.db, "other", models.RoleStaff, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{
		Name:            "Rollout",
		CollaboratorIDs: []uint64{other.ID},
	}, owner)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.RemoveCollaborator(project.ID, other.ID, owner))
	suite.ElementsMatch([]uint64{owner.ID}, projectCollaboratorIDs(suite.T(), suite.db, project.ID))
}

func (suite *ProjectServiceTestSuite) TestRemoveOwnerIsRejected() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{Name: "Rollout"}, owner)
	suite.Require().NoError(err)

	err = suite.service.RemoveCollaborator(project.ID, owner.ID, owner)
	suite.ErrorIs(err, ErrCannotRemoveProjectOwner)
	suite.True(apperrors.IsConflict(err))
	suite.ElementsMatch([]uint64{owner.ID}, projectCollaboratorIDs(suite.T(), suite.db, project.ID))
}

func (suite *ProjectServiceTestSuite) TestModifyRequiresOwnerOrManagerRole() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleStaff, nil, nil)
	staff := createTestUser(suite.T(), suite.db, "staff", models.RoleStaff, nil, nil)
	manager := createTestUser(suite.T(), suite.db, "manager", models.RoleManager, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{Name: "Rollout"}, owner)
	suite.Require().NoError(err)

	name := "Renamed"
	_, err = suite.service.UpdateProject(project.ID, UpdateProjectInput{Name: &name}, staff)
	suite.ErrorIs(err, ErrProjectModifyForbidden)

	// A staff owner can modify their own project; a manager can modify any.
	_, err = suite.service.UpdateProject(project.ID, UpdateProjectInput{Name: &name}, owner)
	suite.NoError(err)
	_, err = suite.service.UpdateProject(project.ID, UpdateProjectInput{Name: &name}, manager)
	suite.NoError(err)
}

func (suite *ProjectServiceTestSuite) TestArchiveAndUnarchive() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{Name: "Rollout"}, owner)
	suite.Require().NoError(err)

	archived, err := suite.service.SetArchived(project.ID, true, owner)
	suite.Require().NoError(err)
	suite.True(archived.IsArchived)

	// Archiving again is a no-op.
	again, err := suite.service.SetArchived(project.ID, true, owner)
	suite.Require().NoError(err)
	suite.True(again.IsArchived)

	restored, err := suite.service.SetArchived(project.ID, false, owner)
	suite.Require().NoError(err)
	suite.False(restored.IsArchived)
}

func (suite *ProjectServiceTestSuite) TestArchivedProjectIsNeverOverdue() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)
	past := time.Now().AddDate(0, 0, -7)

	project, err := suite.service.CreateProject(CreateProjectInput{
		Name:     "Legacy Migration",
		Deadline: &past,
	}, owner)
	suite.Require().NoError(err)
	suite.Require().NotNil(project.IsOverdue())
	suite.True(*project.IsOverdue())

	archived, err := suite.service.SetArchived(project.ID, true, owner)
	suite.Require().NoError(err)
	suite.Require().NotNil(archived.IsOverdue())
	suite.False(*archived.IsOverdue())
}

func (suite *ProjectServiceTestSuite) TestListProjectsScopedToMembership() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleStaff, nil, nil)
	bystander := createTestUser(suite.T(), suite.db, "bystander", models.RoleStaff, nil, nil)
	hr := createTestUser(suite.T(), suite.db, "hr", models.RoleHR, nil, nil)

	_, err := suite.service.CreateProject(CreateProjectInput{Name: "Rollout"}, owner)
	suite.Require().NoError(err)

	mine, total, err := suite.service.ListProjects(ListProjectsInput{}, owner)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(mine, 1)

	none, total, err := suite.service.ListProjects(ListProjectsInput{}, bystander)
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Empty(none)

	all, total, err := suite.service.ListProjects(ListProjectsInput{}, hr)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(all, 1)
}

func (suite *ProjectServiceTestSuite) TestGetProjectAccess() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleStaff, nil, nil)
	bystander := createTestUser(suite.T(), suite.db, "bystander", models.RoleStaff, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{Name: "Rollout"}, owner)
	suite.Require().NoError(err)

	_, err = suite.service.GetProject(project.ID, owner)
	suite.NoError(err)

	_, err = suite.service.GetProject(project.ID, bystander)
	suite.ErrorIs(err, ErrProjectAccessForbidden)

	_, err = suite.service.GetProject(9999, owner)
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ProjectServiceTestSuite) TestActivityLogWritten() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)

	project, err := suite.service.CreateProject(CreateProjectInput{Name: "Rollout"}, owner)
	suite.Require().NoError(err)

	var logs []models.ActivityLog
	suite.Require().NoError(suite.db.
		Where("resource_type = ? AND resource_id = ?", models.ResourceProject, project.ID).
		Find(&logs).Error)
	suite.Require().Len(logs, 1)
	suite.Equal(models.ActionCreated, logs[0].Action)
	suite.Equal(owner.ID, logs[0].ActorID)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
