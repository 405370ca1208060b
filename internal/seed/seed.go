// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"lifeline/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumDonors   int
	NumRequests int
	NumRatings  int
	ShouldClean bool
}

var (
	firstNames = []string{
		"Rahim", "Karim", "Ayesha", "Fatima", "Sakib", "Tamim", "Nusrat", "Sharmin",
		"Jamal", "Kamal", "Rafiq", "Shafiq", "Nasrin", "Taslima", "Habib", "Hasan",
		"Hossain", "Mahmud", "Farhana", "Sumaiya", "Imran", "Arif", "Salma", "Ruma",
		"Shahin", "Rubel", "Mitu", "Shila", "Jahid", "Masud", "Lima", "Rina",
		"Tanvir", "Fahim", "Nabila", "Sadia", "Rakib", "Shakil", "Mouri", "Tania",
	}

	lastNames = []string{
		"Uddin", "Ahmed", "Khan", "Hossain", "Islam", "Rahman", "Akter", "Begum",
		"Chowdhury", "Mia", "Sarkar", "Das", "Roy", "Haque", "Ali", "Sheikh",
		"Mollah", "Talukder", "Bhuiyan", "Karim", "Siddique", "Mazumder",
	}

	// areasByCity maps each seeded city to its neighborhoods.
	areasByCity = map[string][]string{
		"Dhaka":      {"Dhanmondi", "Mirpur", "Uttara", "Banani", "Gulshan", "Mohammadpur", "Badda", "Motijheel"},
		"Chattogram": {"Agrabad", "Nasirabad", "Halishahar", "Pahartali", "Khulshi"},
		"Sylhet":     {"Zindabazar", "Ambarkhana", "Shahjalal Upashahar"},
		"Rajshahi":   {"Shaheb Bazar", "Uposhohor", "Binodpur"},
		"Khulna":     {"Sonadanga", "Khalishpur", "Boyra"},
	}

	hospitals = []string{
		"Dhaka Medical College Hospital",
		"Square Hospital",
		"United Hospital",
		"Chittagong Medical College Hospital",
		"Sylhet MAG Osmani Medical College",
		"Rajshahi Medical College Hospital",
		"Khulna Medical College Hospital",
		"Evercare Hospital Dhaka",
	}

	ratingComments = []string{
		"Donated on short notice, very grateful.",
		"Responded quickly and showed up on time.",
		"Kind and cooperative throughout.",
		"Hard to reach at first but came through.",
		"Helped my father during surgery. Thank you.",
		"Very reliable donor.",
	}
)

// Seeder creates demo data for the donor directory.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Run executes a full seeding pass per the options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	donors, err := s.SeedDonors(opts.NumDonors)
	if err != nil {
		return fmt.Errorf("failed to seed donors: %w", err)
	}
	log.Printf("✓ %d donors created", len(donors))

	requests, err := s.SeedContactRequests(donors, opts.NumRequests)
	if err != nil {
		return fmt.Errorf("failed to seed contact requests: %w", err)
	}
	log.Printf("✓ %d contact requests created", requests)

	ratings, err := s.SeedRatings(donors, opts.NumRatings)
	if err != nil {
		return fmt.Errorf("failed to seed ratings: %w", err)
	}
	log.Printf("✓ %d ratings created", ratings)

	return nil
}

// ClearAll removes all seeded rows. Postgres gets a TRUNCATE so identity
// sequences restart; other dialects fall back to ordered deletes.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	if s.db.Dialector.Name() == "postgres" {
		return s.db.Exec(`TRUNCATE TABLE ratings, contact_requests, users RESTART IDENTITY CASCADE;`).Error
	}

	for _, model := range []any{&models.Rating{}, &models.ContactRequest{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedDonors creates n users with donor profiles. Every seeded user shares the
// password "password123" so developers can log into any account.
func (s *Seeder) SeedDonors(n int) ([]models.User, error) {
	// One hash for all seed users keeps large runs fast.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(areasByCity))
	for city := range areasByCity {
		cities = append(cities, city)
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[s.rng.Intn(len(firstNames))]
		last := lastNames[s.rng.Intn(len(lastNames))]
		city := cities[s.rng.Intn(len(cities))]
		areas := areasByCity[city]

		users = append(users, models.User{
			Name:         first + " " + last,
			Email:        fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Phone:        fmt.Sprintf("017%08d", s.rng.Intn(100000000)),
			BloodGroup:   models.BloodGroups[s.rng.Intn(len(models.BloodGroups))],
			Area:         areas[s.rng.Intn(len(areas))],
			City:         city,
			IsDonor:      s.rng.Intn(10) != 0, // roughly one in ten opts out
			PasswordHash: string(hashed),
			CreatedAt:    time.Now().Add(-time.Duration(s.rng.Intn(365*24)) * time.Hour),
		})
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SeedContactRequests creates up to n contact requests between random pairs of
// seeded users. Roughly half stay pending; the rest are resolved.
func (s *Seeder) SeedContactRequests(users []models.User, n int) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	type pair struct{ requester, donor uint }
	seen := make(map[pair]bool)
	created := 0

	for attempts := 0; created < n && attempts < n*4; attempts++ {
		requester := users[s.rng.Intn(len(users))]
		donor := users[s.rng.Intn(len(users))]
		if requester.ID == donor.ID || !donor.IsDonor {
			continue
		}

		status := models.ContactRequestStatusPending
		switch s.rng.Intn(4) {
		case 0:
			status = models.ContactRequestStatusApproved
		case 1:
			status = models.ContactRequestStatusRejected
		}

		// Only one pending request per requester/donor pair.
		key := pair{requester.ID, donor.ID}
		if status == models.ContactRequestStatusPending {
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		request := models.ContactRequest{
			RequesterID:  requester.ID,
			DonorID:      donor.ID,
			Status:       status,
			Message:      gofakeit.Sentence(8),
			Hospital:     hospitals[s.rng.Intn(len(hospitals))],
			ContactPhone: requester.Phone,
			RequiredTime: gofakeit.FutureDate().Format("2 Jan, 3pm"),
		}
		if err := s.db.Create(&request).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// SeedRatings creates up to n ratings from random raters to random donors,
// one per rater/donor pair.
func (s *Seeder) SeedRatings(users []models.User, n int) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	type pair struct{ donor, rater uint }
	seen := make(map[pair]bool)
	created := 0

	for attempts := 0; created < n && attempts < n*4; attempts++ {
		donor := users[s.rng.Intn(len(users))]
		rater := users[s.rng.Intn(len(users))]
		if donor.ID == rater.ID || !donor.IsDonor {
			continue
		}
		key := pair{donor.ID, rater.ID}
		if seen[key] {
			continue
		}
		seen[key] = true

		rating := models.Rating{
			DonorID: donor.ID,
			RaterID: rater.ID,
			Rating:  2 + s.rng.Intn(4), // skew toward positive experiences
			Comment: ratingComments[s.rng.Intn(len(ratingComments))],
		}
		if err := s.db.Create(&rating).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
