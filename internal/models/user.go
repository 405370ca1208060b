// Package models contains data structures for the application's domain models.
package models

import "time"

// BloodGroupUnknown is the placeholder blood group assigned to users created
// through lazy materialization, before they fill in their donor profile.
const BloodGroupUnknown = "Unknown"

// PlaceholderLocation is the placeholder area/city value for lazily created users.
const PlaceholderLocation = "Unknown"

// BloodGroups lists the eight valid blood group values accepted at registration.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodGroup reports whether bg is one of the eight enumerated blood groups.
func IsValidBloodGroup(bg string) bool {
	for _, g := range BloodGroups {
		if g == bg {
			return true
		}
	}
	return false
}

// User represents a person in the directory, who may or may not be an active donor.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Name       string    `gorm:"not null" json:"name"`
	Phone      string    `json:"phone,omitempty"`
	BloodGroup string    `gorm:"not null;default:'Unknown'" json:"blood_group"`
	Area       string    `gorm:"not null;default:'Unknown'" json:"area"`
	City       string    `gorm:"not null;default:'Unknown'" json:"city"`
	IsDonor    bool      `gorm:"not null;default:true" json:"is_donor"`
	// PasswordHash is kept for the legacy credential-based registration flow.
	// Sign-in is handled by the external identity provider; the hash is never serialized.
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DonorProfile is the public view of a donor returned by directory endpoints.
// Email, phone and credential fields are deliberately absent.
type DonorProfile struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	BloodGroup string    `json:"blood_group"`
	Area       string    `json:"area"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublicProfile projects the user's donor-directory fields.
func (u *User) PublicProfile() DonorProfile {
	return DonorProfile{
		ID:         u.ID,
		Name:       u.Name,
		BloodGroup: u.BloodGroup,
		Area:       u.Area,
		City:       u.City,
		CreatedAt:  u.CreatedAt,
	}
}
