package seed

import (
	"fmt"
	"log"

	"lumagram/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores plaintext passwords so huge seeds finish quickly.
	// Never use outside local development.
	SkipBcrypt bool
	// MaxDays bounds how far back generated post timestamps spread.
	MaxDays int
}

// Seed populates the database with test data: users, a follow mesh across
// them, posts, comments and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	edges, err := createFollowMesh(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("%d follow edges created", edges)

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createEngagement(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create comments and likes: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, comments, posts, subscriptions, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few well-known users so dev logins stay predictable.
	if count >= 2 {
		for _, fixed := range []struct {
			username string
			open     bool
		}{
			{"demo", true},
			{"private_demo", false},
		} {
			fixed := fixed
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = fixed.username
				u.Email = fmt.Sprintf("%s@example.com", fixed.username)
				u.IsOpened = fixed.open
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFollowMesh links every user to a handful of random others.
func createFollowMesh(factory *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		targets := factory.rng.Intn(5) + 1
		seen := map[uint]bool{follower.ID: true}

		for i := 0; i < targets; i++ {
			target := users[factory.rng.Intn(len(users))]
			if seen[target.ID] {
				continue
			}
			seen[target.ID] = true

			if err := factory.CreateSubscription(follower, target); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[factory.rng.Intn(len(users))]
		posts = append(posts, factory.BuildPost(user))
	}

	// Batched insert; per-row creates are too slow for large seeds.
	const batchSize = 200
	for start := 0; start < len(posts); start += batchSize {
		end := start + batchSize
		if end > len(posts) {
			end = len(posts)
		}
		batch := posts[start:end]
		if err := factory.CreatePostsBatch(batch); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

func createEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		comments := factory.rng.Intn(6)
		for i := 0; i < comments; i++ {
			author := users[factory.rng.Intn(len(users))]
			if err := factory.CreateComment(author, post); err != nil {
				return err
			}
		}

		likes := factory.rng.Intn(8)
		for i := 0; i < likes; i++ {
			liker := users[factory.rng.Intn(len(users))]
			if err := factory.CreateLike(liker, post); err != nil {
				return err
			}
		}
	}
	return nil
}
