// Command seed populates the development database with generated users,
// follow edges, posts, comments and likes.
package main

import (
	"flag"
	"log"

	"lumagram/internal/config"
	"lumagram/internal/database"
	"lumagram/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "number of users to create")
	numPosts := flag.Int("posts", 300, "number of posts to create")
	clean := flag.Bool("clean", false, "truncate existing data first")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "store plaintext passwords (dev fast mode)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *clean,
		SkipBcrypt:  *skipBcrypt,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
