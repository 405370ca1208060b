// Package service implements the application's business logic.
package service

import (
	"context"
	"errors"
	"strings"

	"lifeline/internal/models"
	"lifeline/internal/repository"
)

// IdentityService maps authenticated identities to local user rows. Sign-in
// happens at the identity provider, so the first authenticated call from a new
// account has no local row yet; Resolve materializes one on demand.
type IdentityService struct {
	userRepo repository.UserRepository
}

// NewIdentityService returns a new IdentityService.
func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// Resolve returns the local user for the given verified email, creating a
// placeholder row if none exists. The placeholder is not listed as a donor
// until the user completes their profile.
func (s *IdentityService) Resolve(ctx context.Context, email, name string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, models.NewValidationError("authenticated identity has no email address")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	if name == "" {
		// Fall back to the address local part; keep the whole claim if it
		// carries no "@" at all.
		name = email
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}
	user = &models.User{
		Email:      email,
		Name:       name,
		BloodGroup: models.BloodGroupUnknown,
		Area:       models.PlaceholderLocation,
		City:       models.PlaceholderLocation,
		IsDonor:    false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent first requests can race on the unique email; the loser
		// just reads the row the winner inserted.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return s.existingByEmail(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) existingByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInternalError(errors.New("user vanished after unique violation"))
	}
	return user, nil
}
