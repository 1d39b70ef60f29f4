// Command seed populates the database with demo users and activity.
package main

import (
	"flag"
	"log"

	"github.com/Zarsham27/social-networking-web-app/internal/config"
	"github.com/Zarsham27/social-networking-web-app/internal/database"
	"github.com/Zarsham27/social-networking-web-app/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Hash passwords at minimum bcrypt cost")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if _, err := seed.NewSeeder(db, seed.Options{FastHash: *fast}).Run(*numUsers, *numPosts, *shouldClean); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All test users have the password: %s", seed.DefaultPassword)
}
