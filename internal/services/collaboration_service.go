package services

import (
	"errors"
	"fmt"

	apperrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/repository"
	"gorm.io/gorm"
)

// CollaborationService validates collaborator lists against department
// scoping. A user without a department is unconstrained: absence of data is
// permissive, only a mismatch between two present departments rejects.
// Several call sites depend on that asymmetry; do not tighten it.
type CollaborationService struct {
	userRepo repository.UserRepository
}

// NewCollaborationService creates a new CollaborationService
func NewCollaborationService(userRepo repository.UserRepository) *CollaborationService {
	return &CollaborationService{userRepo: userRepo}
}

// ValidateCollaborators resolves every candidate and checks department
// membership against the scoping department.
func (s *CollaborationService) ValidateCollaborators(candidateIDs []uint64, departmentID *uint64) error {
	for _, id := range candidateIDs {
		user, err := s.userRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validationf("collaborator %d not found", id)
			}
			return fmt.Errorf("failed to resolve collaborator %d: %w", id, err)
		}

		if user.DepartmentID != nil && departmentID != nil && *user.DepartmentID != *departmentID {
			return apperrors.Validationf("all collaborators must be from the same department")
		}
	}

	return nil
}

// ValidateDepartmentMembership rejects only when both departments are
// present and differ.
func (s *CollaborationService) ValidateDepartmentMembership(a, b *uint64) error {
	if a == nil || b == nil {
		return nil
	}
	if *a != *b {
		return apperrors.Validationf("departments do not match")
	}
	return nil
}
