package service

import (
	"context"
	"testing"

	"lifeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingRepoStub struct {
	upsertFn       func(context.Context, *models.Rating) (bool, error)
	listForDonorFn func(context.Context, uint) ([]models.RatingEntry, error)
	summaryFn      func(context.Context, uint) (models.RatingSummary, error)
}

func (s *ratingRepoStub) Upsert(ctx context.Context, rating *models.Rating) (bool, error) {
	return s.upsertFn(ctx, rating)
}
func (s *ratingRepoStub) ListForDonor(ctx context.Context, donorID uint) ([]models.RatingEntry, error) {
	return s.listForDonorFn(ctx, donorID)
}
func (s *ratingRepoStub) Summary(ctx context.Context, donorID uint) (models.RatingSummary, error) {
	return s.summaryFn(ctx, donorID)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		upsertFn:       func(context.Context, *models.Rating) (bool, error) { return true, nil },
		listForDonorFn: func(context.Context, uint) ([]models.RatingEntry, error) { return nil, nil },
		summaryFn:      func(context.Context, uint) (models.RatingSummary, error) { return models.RatingSummary{}, nil },
	}
}

func TestRatingServiceSubmitValidatesRange(t *testing.T) {
	svc := NewRatingService(noopRatingRepo(), noopUserRepo())

	for _, stars := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), 2, SubmitRatingInput{DonorID: 1, Rating: stars})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	}
}

func TestRatingServiceSubmitRejectsSelfRating(t *testing.T) {
	svc := NewRatingService(noopRatingRepo(), noopUserRepo())

	_, err := svc.Submit(context.Background(), 4, SubmitRatingInput{DonorID: 4, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
}

func TestRatingServiceSubmitUnknownDonor(t *testing.T) {
	users := noopUserRepo()
	users.getDonorByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("Donor", id)
	}
	svc := NewRatingService(noopRatingRepo(), users)

	_, err := svc.Submit(context.Background(), 2, SubmitRatingInput{DonorID: 9, Rating: 3})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestRatingServiceSubmitUpserts(t *testing.T) {
	var got *models.Rating
	repo := noopRatingRepo()
	repo.upsertFn = func(_ context.Context, r *models.Rating) (bool, error) {
		got = r
		return false, nil
	}
	svc := NewRatingService(repo, noopUserRepo())

	created, err := svc.Submit(context.Background(), 2, SubmitRatingInput{DonorID: 9, Rating: 4, Comment: "Reliable"})
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, got)
	assert.Equal(t, uint(9), got.DonorID)
	assert.Equal(t, uint(2), got.RaterID)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "Reliable", got.Comment)
}

func TestRatingServiceList(t *testing.T) {
	repo := noopRatingRepo()
	repo.listForDonorFn = func(context.Context, uint) ([]models.RatingEntry, error) {
		return []models.RatingEntry{{ID: 1, Rating: 5, RaterName: "Ishrat"}}, nil
	}
	repo.summaryFn = func(context.Context, uint) (models.RatingSummary, error) {
		return models.RatingSummary{Average: 4.5, Count: 2}, nil
	}
	svc := NewRatingService(repo, noopUserRepo())

	entries, summary, err := svc.List(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ishrat", entries[0].RaterName)
	assert.Equal(t, 4.5, summary.Average)
	assert.Equal(t, int64(2), summary.Count)
}
