package service

import (
	"context"

	"lifeline/internal/cache"
	"lifeline/internal/models"
	"lifeline/internal/repository"
)

// SubmitRatingInput carries a rater's submission for a donor.
type SubmitRatingInput struct {
	DonorID uint
	Rating  int
	Comment string
}

// RatingService implements donor rating submission and aggregation.
type RatingService struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
}

// NewRatingService returns a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, userRepo repository.UserRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, userRepo: userRepo}
}

// Submit records the rater's rating of a donor. A repeat submission for the
// same donor replaces the earlier rating rather than adding a second one.
func (s *RatingService) Submit(ctx context.Context, raterID uint, input SubmitRatingInput) (created bool, err error) {
	if input.Rating < 1 || input.Rating > 5 {
		return false, models.NewValidationError("Rating must be between 1 and 5")
	}
	if input.DonorID == raterID {
		return false, models.NewValidationError("You cannot rate yourself")
	}

	if _, err := s.userRepo.GetDonorByID(ctx, input.DonorID); err != nil {
		return false, err
	}

	created, err = s.ratingRepo.Upsert(ctx, &models.Rating{
		DonorID: input.DonorID,
		RaterID: raterID,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		return false, err
	}
	cache.Invalidate(ctx, cache.RatingSummaryKey(input.DonorID))
	return created, nil
}

// List returns a donor's ratings newest first together with the aggregate.
// A donor nobody has rated yet reports a zero average over zero ratings.
func (s *RatingService) List(ctx context.Context, donorID uint) ([]models.RatingEntry, models.RatingSummary, error) {
	entries, err := s.ratingRepo.ListForDonor(ctx, donorID)
	if err != nil {
		return nil, models.RatingSummary{}, err
	}

	var summary models.RatingSummary
	err = cache.CacheAside(ctx, cache.RatingSummaryKey(donorID), &summary, cache.RatingSummaryTTL, func() error {
		var ferr error
		summary, ferr = s.ratingRepo.Summary(ctx, donorID)
		return ferr
	})
	if err != nil {
		return nil, models.RatingSummary{}, err
	}
	return entries, summary, nil
}
