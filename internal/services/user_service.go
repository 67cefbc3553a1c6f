package services

import (
	"errors"
	"fmt"

	apperrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

var ErrRoleAssignForbidden = apperrors.Forbiddenf("only HR may assign roles")

// UserService handles user administration.
type UserService struct {
	userRepo repository.UserRepository
	activity *ActivityService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, activity *ActivityService) *UserService {
	return &UserService{
		userRepo: userRepo,
		activity: activity,
	}
}

// AssignRole changes a user's role. Roles are otherwise immutable; this is
// the single sanctioned mutation and it is restricted to HR.
func (s *UserService) AssignRole(userID uint64, role models.Role, actor *models.User) (*models.User, error) {
	if !actor.Role.IsHR() {
		return nil, ErrRoleAssignForbidden
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role == role {
		return user, nil
	}

	before := Snapshot{"role": user.Role}

	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = role

	s.activity.Record(actor.ID, models.ResourceUser, userID, models.ActionRoleAssigned, before, Snapshot{"role": role})

	return user, nil
}
