// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"lumagram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		//nolint:gosec // Weak random number generator is fine for seeding
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`. Roughly a third
// of generated profiles are closed so the approval flow has data to exercise.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))

	user := &models.User{
		Username:    username,
		Email:       fmt.Sprintf("%s@example.com", username),
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		Description: gofakeit.Sentence(8),
		Avatar:      fmt.Sprintf("seed-avatar-%s.jpg", gofakeit.UUID()),
		IsOpened:    f.rng.Float32() >= 0.3,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post struct with a realistic created_at spread but
// does not persist it. Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		UserID:      user.ID,
		Picture:     fmt.Sprintf("seed-pic-%s.jpg", gofakeit.UUID()),
		Description: gofakeit.Sentence(f.rng.Intn(12) + 3),
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateSubscription persists a follow edge. Open targets get an accepted
// edge; closed targets mostly stay pending, with some approved.
func (f *Factory) CreateSubscription(follower, target *models.User) error {
	status := models.SubscriptionAccepted
	if !target.IsOpened && f.rng.Float32() < 0.6 {
		status = models.SubscriptionPending
	}

	return f.db.Create(&models.Subscription{
		FollowerID:  follower.ID,
		FollowsToID: target.ID,
		Status:      status,
	}).Error
}

// CreateComment persists a short comment by user under post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) error {
	text := gofakeit.Sentence(f.rng.Intn(8) + 2)
	if len(text) > models.MaxCommentTextLen {
		text = text[:models.MaxCommentTextLen]
	}
	return f.db.Create(&models.Comment{
		UserID: user.ID,
		PostID: post.ID,
		Text:   text,
	}).Error
}

// CreateLike persists a like, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	var existing models.Like
	err := f.db.Where("user_id = ? AND post_id = ?", user.ID, post.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}
