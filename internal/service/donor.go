package service

import (
	"context"

	"lifeline/internal/cache"
	"lifeline/internal/models"
	"lifeline/internal/repository"
)

// UpdateProfileInput carries the user-editable profile fields. Nil pointers
// leave the corresponding field untouched.
type UpdateProfileInput struct {
	Name       *string
	Phone      *string
	BloodGroup *string
	Area       *string
	City       *string
	IsDonor    *bool
}

// DonorService implements the public donor directory and profile management.
type DonorService struct {
	userRepo repository.UserRepository
}

// NewDonorService returns a new DonorService.
func NewDonorService(userRepo repository.UserRepository) *DonorService {
	return &DonorService{userRepo: userRepo}
}

// Search returns the public profiles of donors matching the filter. All
// filters are optional, exact-match, and combined with AND.
func (s *DonorService) Search(ctx context.Context, filter repository.DonorFilter) ([]models.DonorProfile, error) {
	if filter.BloodGroup != "" && !models.IsValidBloodGroup(filter.BloodGroup) {
		return nil, models.NewValidationError("Invalid blood group")
	}

	donors, err := s.userRepo.SearchDonors(ctx, filter)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.DonorProfile, 0, len(donors))
	for i := range donors {
		profiles = append(profiles, donors[i].PublicProfile())
	}
	return profiles, nil
}

// Get returns one donor's public profile.
func (s *DonorService) Get(ctx context.Context, donorID uint) (models.DonorProfile, error) {
	var profile models.DonorProfile
	err := cache.CacheAside(ctx, cache.DonorKey(donorID), &profile, cache.DonorTTL, func() error {
		donor, ferr := s.userRepo.GetDonorByID(ctx, donorID)
		if ferr != nil {
			return ferr
		}
		profile = donor.PublicProfile()
		return nil
	})
	if err != nil {
		return models.DonorProfile{}, err
	}
	return profile, nil
}

// Profile returns the caller's own full record.
func (s *DonorService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the provided field changes to the caller's record.
func (s *DonorService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.BloodGroup != nil {
		if !models.IsValidBloodGroup(*input.BloodGroup) {
			return nil, models.NewValidationError("Invalid blood group")
		}
		user.BloodGroup = *input.BloodGroup
	}
	if input.Area != nil {
		user.Area = *input.Area
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.IsDonor != nil {
		user.IsDonor = *input.IsDonor
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	// Cached copies of the profile and donor card are stale now.
	cache.InvalidateProfile(ctx, userID)
	return user, nil
}
