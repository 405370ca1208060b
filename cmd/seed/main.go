// Command main runs the database seeder for Lifeline.
package main

import (
	"flag"
	"log"

	"lifeline/internal/config"
	"lifeline/internal/database"
	"lifeline/internal/seed"
)

func main() {
	numDonors := flag.Int("donors", 50, "Number of donors to create")
	numRequests := flag.Int("requests", 40, "Number of contact requests to create")
	numRatings := flag.Int("ratings", 80, "Number of ratings to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d donors, %d requests, %d ratings, clean=%v\n",
		*numDonors, *numRequests, *numRatings, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumDonors:   *numDonors,
		NumRequests: *numRequests,
		NumRatings:  *numRatings,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All seeded users have the password: password123")
}
