// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"lumagram/internal/cache"
	"lumagram/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetProfile(ctx context.Context, username string, viewerID uint) (*models.User, error)
	Search(ctx context.Context, prefix string, limit int) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := readDB(r.db).WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := readDB(r.db).WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetProfile loads a user by username with the follower counters and the
// viewer's outgoing edge status annotated in a single query.
func (r *userRepository) GetProfile(ctx context.Context, username string, viewerID uint) (*models.User, error) {
	var user models.User
	err := r.applyProfileDetails(readDB(r.db).WithContext(ctx), viewerID).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// applyProfileDetails adds subqueries to fetch follow counters and the
// viewer's edge status in a single query. Only accepted edges count.
func (r *userRepository) applyProfileDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "users.*, " +
		"(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.follows_to_id = users.id AND subscriptions.status = 'accepted') as n_followers, " +
		"(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.follower_id = users.id AND subscriptions.status = 'accepted') as n_follows"

	if viewerID != 0 {
		return db.Select(selectQuery+", COALESCE((SELECT status FROM subscriptions WHERE subscriptions.follower_id = ? AND subscriptions.follows_to_id = users.id), '') as followed_by_me", viewerID)
	}

	return db.Select(selectQuery + ", '' as followed_by_me")
}

// Search finds users whose username starts with the given prefix,
// ordered alphabetically and capped at limit.
func (r *userRepository) Search(ctx context.Context, prefix string, limit int) ([]models.User, error) {
	var users []models.User
	if err := readDB(r.db).WithContext(ctx).
		Where(`username LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("username ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update persists every column except the password hash. Cached copies of the
// user round-trip through JSON, which strips the password, so a Save that
// included it could blank the stored hash.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("password").Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
