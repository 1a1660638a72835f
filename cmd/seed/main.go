// Command main runs the database seeder for Miso.
package main

import (
	"flag"
	"log"

	"github.com/imaneboulahya/Miso/internal/config"
	"github.com/imaneboulahya/Miso/internal/database"
	"github.com/imaneboulahya/Miso/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of users to create")
	numArticles := flag.Int("articles", 120, "Number of articles to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Store plaintext passwords (dev only, much faster)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumArticles: *numArticles,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
