package repository

import (
	"context"
	"errors"
	"math"

	"lifeline/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for donor ratings.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) (created bool, err error)
	ListForDonor(ctx context.Context, donorID uint) ([]models.RatingEntry, error)
	Summary(ctx context.Context, donorID uint) (models.RatingSummary, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert stores the rater's rating of a donor, overwriting any earlier one for
// the same pair. The lookup and write share a transaction; the unique index on
// (donor_id, rater_id) backstops concurrent first-time submissions.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) (bool, error) {
	var created bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("donor_id = ? AND rater_id = ?", rating.DonorID, rating.RaterID).
			First(&existing).Error
		if err == nil {
			if err := tx.Model(&existing).
				Updates(map[string]interface{}{"rating": rating.Rating, "comment": rating.Comment}).Error; err != nil {
				return models.NewInternalError(err)
			}
			rating.ID = existing.ID
			rating.CreatedAt = existing.CreatedAt
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewInternalError(err)
		}
		if err := tx.Create(rating).Error; err != nil {
			if isUniqueConstraintError(err) {
				// Lost a race with a concurrent first submission; fold into an update.
				if err := tx.Model(&models.Rating{}).
					Where("donor_id = ? AND rater_id = ?", rating.DonorID, rating.RaterID).
					Updates(map[string]interface{}{"rating": rating.Rating, "comment": rating.Comment}).Error; err != nil {
					return models.NewInternalError(err)
				}
				return nil
			}
			return models.NewInternalError(err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *ratingRepository) ListForDonor(ctx context.Context, donorID uint) ([]models.RatingEntry, error) {
	entries := []models.RatingEntry{}
	if err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.id, ratings.rating, ratings.comment, ratings.created_at, users.name AS rater_name").
		Joins("JOIN users ON users.id = ratings.rater_id").
		Where("ratings.donor_id = ?", donorID).
		Order("ratings.created_at DESC").
		Scan(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *ratingRepository) Summary(ctx context.Context, donorID uint) (models.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).
		Table("ratings").
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("donor_id = ?", donorID).
		Scan(&row).Error; err != nil {
		return models.RatingSummary{}, models.NewInternalError(err)
	}
	return models.RatingSummary{
		Average: math.Round(row.Average*10) / 10,
		Count:   row.Count,
	}, nil
}
