package models

import "time"

// Rating is a rater's 1-5 star opinion of a donor. At most one rating exists
// per (donor, rater) pair; resubmission overwrites the stars and comment.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DonorID   uint      `gorm:"not null;uniqueIndex:idx_ratings_donor_rater" json:"donor_id"`
	RaterID   uint      `gorm:"not null;uniqueIndex:idx_ratings_donor_rater" json:"rater_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Donor *User `gorm:"foreignKey:DonorID" json:"-"`
	Rater *User `gorm:"foreignKey:RaterID" json:"-"`
}

// RatingEntry is a rating joined with the rater's display name.
type RatingEntry struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	RaterName string    `json:"rater_name"`
}

// RatingSummary holds the derived aggregate for a donor's ratings.
// Average is rounded to one decimal place and reported as 0 when no ratings exist.
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"total_ratings"`
}
