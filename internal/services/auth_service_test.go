package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewAuthService(repository.NewUserRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) TestSignupDefaultsToStaff() {
	user, err := suite.service.Signup(SignupInput{
		Username: "alice",
		Password: "password123",
	})
	suite.Require().NoError(err)

	suite.Equal(models.RoleStaff, user.Role)
	suite.NotEqual("password123", user.PasswordHash)
}

func (suite *AuthServiceTestSuite) TestSignupValidation() {
	_, err := suite.service.Signup(SignupInput{Username: "  ", Password: "password123"})
	suite.Error(err)

	_, err = suite.service.Signup(SignupInput{Username: "alice", Password: "short"})
	suite.ErrorIs(err, ErrPasswordTooShort)

	_, err = suite.service.Signup(SignupInput{Username: "alice", Password: "password123", Role: "ceo"})
	suite.ErrorIs(err, ErrInvalidRole)
}

func (suite *AuthServiceTestSuite) TestSignupRejectsDuplicateUsername() {
	_, err := suite.service.Signup(SignupInput{Username: "alice", Password: "password123"})
	suite.Require().NoError(err)

	_, err = suite.service.Signup(SignupInput{Username: "alice", Password: "password456"})
	suite.ErrorIs(err, ErrUsernameTaken)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	_, err := suite.service.Signup(SignupInput{Username: "alice", Password: "password123"})
	suite.Require().NoError(err)

	user, err := suite.service.Login("alice", "password123")
	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)

	_, err = suite.service.Login("alice", "wrongpassword")
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.service.Login("nobody", "password123")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
