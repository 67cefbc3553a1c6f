package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

// MetricsServiceTestSuite defines the test suite for MetricsService
type MetricsServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *MetricsService
	tasks    *TaskService
	projects *ProjectService
}

// SetupTest runs before each test
func (suite *MetricsServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	activityRepo := repository.NewActivityLogRepository(suite.db)

	logger := newTestLogger()
	collab := NewCollaborationService(userRepo)
	activity := NewActivityService(activityRepo, logger)
	suite.projects = NewProjectService(projectRepo, collab, activity)
	suite.tasks = NewTaskService(taskRepo, projectRepo, userRepo, collab, activity, logger)
	suite.service = NewMetricsService(taskRepo, projectRepo)
}

// TearDownTest runs after each test
func (suite *MetricsServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *MetricsServiceTestSuite) TestBucketsIncludeEveryStatus() {
	user := createTestUser(suite.T(), suite.db, "user", models.RoleStaff, nil, nil)

	buckets, err := suite.service.TaskStatusBuckets(user)
	suite.Require().NoError(err)

	suite.Len(buckets, 4)
	suite.Equal(int64(0), buckets[models.TaskStatusUnassigned])
	suite.Equal(int64(0), buckets[models.TaskStatusOngoing])
	suite.Equal(int64(0), buckets[models.TaskStatusUnderReview])
	suite.Equal(int64(0), buckets[models.TaskStatusCompleted])
}

func (suite *MetricsServiceTestSuite) TestBucketsCountOwnTasks() {
	user := createTestUser(suite.T(), suite.db, "user", models.RoleStaff, nil, nil)
	other := createTestUser(suite.T(), suite.db, "other", models.RoleStaff, nil, nil)

	_, err := suite.tasks.CreateTask(CreateTaskInput{Title: "a"}, user)
	suite.Require().NoError(err)
	_, err = suite.tasks.CreateTask(CreateTaskInput{Title: "b", Status: models.TaskStatusOngoing}, user)
	suite.Require().NoError(err)
	_, err = suite.tasks.CreateTask(CreateTaskInput{Title: "c"}, other)
	suite.Require().NoError(err)

	buckets, err := suite.service.TaskStatusBuckets(user)
	suite.Require().NoError(err)

	suite.Equal(int64(1), buckets[models.TaskStatusUnassigned])
	suite.Equal(int64(1), buckets[models.TaskStatusOngoing])
	suite.Equal(int64(0), buckets[models.TaskStatusCompleted])
}

func (suite *MetricsServiceTestSuite) TestBucketsRoleScopes() {
	dept := createTestDepartment(suite.T(), suite.db, "Engineering")
	staff := createTestUser(suite.T(), suite.db, "staff", models.RoleStaff, &dept.ID, nil)
	colleague := createTestUser(suite.T(), suite.db, "colleague", models.RoleStaff, &dept.ID, nil)
	outsider := createTestUser(suite.T(), suite.db, "outsider", models.RoleStaff, nil, nil)
	director := createTestUser(suite.T(), suite.db, "director", models.RoleDirector, &dept.ID, nil)
	sm := createTestUser(suite.T(), suite.db, "sm", models.RoleSM, nil, nil)

	_, err := suite.tasks.CreateTask(CreateTaskInput{Title: "a"}, staff)
	suite.Require().NoError(err)
	_, err = suite.tasks.CreateTask(CreateTaskInput{Title: "b"}, colleague)
	suite.Require().NoError(err)
	_, err = suite.tasks.CreateTask(CreateTaskInput{Title: "c"}, outsider)
	suite.Require().NoError(err)

	departmentWide, err := suite.service.TaskStatusBuckets(director)
	suite.Require().NoError(err)
	suite.Equal(int64(2), departmentWide[models.TaskStatusUnassigned])

	everything, err := suite.service.TaskStatusBuckets(sm)
	suite.Require().NoError(err)
	suite.Equal(int64(3), everything[models.TaskStatusUnassigned])
}

func (suite *MetricsServiceTestSuite) TestDashboardCountsOverdueProjects() {
	owner := createTestUser(suite.T(), suite.db, "owner", models.RoleManager, nil, nil)

	past := time.Now().AddDate(0, 0, -3)
	future := time.Now().AddDate(0, 0, 3)

	_, err := suite.projects.CreateProject(CreateProjectInput{Name: "Late", Deadline: &past}, owner)
	suite.Require().NoError(err)
	_, err = suite.projects.CreateProject(CreateProjectInput{Name: "On track", Deadline: &future}, owner)
	suite.Require().NoError(err)
	_, err = suite.projects.CreateProject(CreateProjectInput{Name: "Open ended"}, owner)
	suite.Require().NoError(err)

	// An archived overdue project does not count.
	archived, err := suite.projects.CreateProject(CreateProjectInput{Name: "Shelved", Deadline: &past}, owner)
	suite.Require().NoError(err)
	_, err = suite.projects.SetArchived(archived.ID, true, owner)
	suite.Require().NoError(err)

	metrics, err := suite.service.Dashboard(owner)
	suite.Require().NoError(err)
	suite.Equal(1, metrics.OverdueProjects)
}

func TestMetricsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsServiceTestSuite))
}
