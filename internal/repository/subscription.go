// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"lumagram/internal/models"
	"lumagram/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository stores the directed follow graph. Each edge is a
// single row keyed by (follower_id, follows_to_id) with a status.
type SubscriptionRepository interface {
	Get(ctx context.Context, followerID, followsToID uint) (*models.Subscription, error)
	Upsert(ctx context.Context, followerID, followsToID uint, status models.SubscriptionStatus) (*models.Subscription, error)
	Accept(ctx context.Context, followerID, followsToID uint) error
	Delete(ctx context.Context, followerID, followsToID uint) error
	DeletePendingInbound(ctx context.Context, userID uint) error
	HasAccepted(ctx context.Context, followerID, followsToID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint, afterID uint, limit int) ([]models.User, error)
	ListFollows(ctx context.Context, userID uint, afterID uint, limit int) ([]models.User, error)
	ListPendingFollowers(ctx context.Context, userID uint, afterID uint, limit int) ([]models.User, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Get(ctx context.Context, followerID, followsToID uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := readDB(r.db).WithContext(ctx).
		Where("follower_id = ? AND follows_to_id = ?", followerID, followsToID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &sub, nil
}

// Upsert inserts the edge with the given status, or revives a previously
// rejected edge. An existing accepted or pending edge is left untouched, so
// repeated subscribe calls cannot demote an accepted follow back to pending.
// Returns the edge as stored after the statement.
func (r *subscriptionRepository) Upsert(ctx context.Context, followerID, followsToID uint, status models.SubscriptionStatus) (*models.Subscription, error) {
	sub := models.Subscription{
		FollowerID:  followerID,
		FollowsToID: followsToID,
		Status:      status,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "follower_id"}, {Name: "follows_to_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "subscriptions", Name: "status"}, Value: string(models.SubscriptionRejected)},
		}},
	}).Create(&sub).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.SubscriptionTransitions.WithLabelValues("subscribe").Inc()

	// Re-read the row: when the conflict target existed with a non-rejected
	// status the statement was a no-op and sub holds stale values.
	stored, err := r.Get(ctx, followerID, followsToID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, models.NewInternalError(errors.New("subscription row missing after upsert"))
	}
	return stored, nil
}

// Accept approves an inbound request. Accepting an already accepted edge is a
// no-op success; a rejected or missing edge yields NotFound.
func (r *subscriptionRepository) Accept(ctx context.Context, followerID, followsToID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("follower_id = ? AND follows_to_id = ? AND status IN ?",
			followerID, followsToID,
			[]models.SubscriptionStatus{models.SubscriptionAccepted, models.SubscriptionPending}).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionAccepted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Subscription", followerID)
	}
	observability.SubscriptionTransitions.WithLabelValues("accept").Inc()
	return nil
}

// Delete removes the edge regardless of status. Deleting a missing edge is
// a no-op, so unsubscribe and reject stay idempotent.
func (r *subscriptionRepository) Delete(ctx context.Context, followerID, followsToID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND follows_to_id = ?", followerID, followsToID).
		Delete(&models.Subscription{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.SubscriptionTransitions.WithLabelValues("delete").Inc()
	return nil
}

// DeletePendingInbound drops every pending request toward the user. Called
// when a profile switches from open to closed so stale requests do not
// auto-approve later.
func (r *subscriptionRepository) DeletePendingInbound(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follows_to_id = ? AND status = ?", userID, models.SubscriptionPending).
		Delete(&models.Subscription{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.SubscriptionTransitions.WithLabelValues("purge_pending").Inc()
	return nil
}

func (r *subscriptionRepository) HasAccepted(ctx context.Context, followerID, followsToID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Subscription{}).
		Where("follower_id = ? AND follows_to_id = ? AND status = ?",
			followerID, followsToID, models.SubscriptionAccepted).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListFollowers returns the users with an accepted edge toward userID,
// ordered by user id ascending, starting after afterID.
func (r *subscriptionRepository) ListFollowers(ctx context.Context, userID uint, afterID uint, limit int) ([]models.User, error) {
	return r.listEdgeUsers(ctx,
		"JOIN subscriptions s ON s.follower_id = users.id",
		"s.follows_to_id = ? AND s.status = ?", userID, models.SubscriptionAccepted,
		afterID, limit)
}

// ListFollows returns the users userID has an accepted edge toward.
func (r *subscriptionRepository) ListFollows(ctx context.Context, userID uint, afterID uint, limit int) ([]models.User, error) {
	return r.listEdgeUsers(ctx,
		"JOIN subscriptions s ON s.follows_to_id = users.id",
		"s.follower_id = ? AND s.status = ?", userID, models.SubscriptionAccepted,
		afterID, limit)
}

// ListPendingFollowers returns the users with a pending request toward userID.
func (r *subscriptionRepository) ListPendingFollowers(ctx context.Context, userID uint, afterID uint, limit int) ([]models.User, error) {
	return r.listEdgeUsers(ctx,
		"JOIN subscriptions s ON s.follower_id = users.id",
		"s.follows_to_id = ? AND s.status = ?", userID, models.SubscriptionPending,
		afterID, limit)
}

func (r *subscriptionRepository) listEdgeUsers(ctx context.Context, join, where string, userID uint, status models.SubscriptionStatus, afterID uint, limit int) ([]models.User, error) {
	var users []models.User
	q := readDB(r.db).WithContext(ctx).
		Table("users").
		Joins(join).
		Where(where, userID, status)
	if afterID > 0 {
		q = q.Where("users.id > ?", afterID)
	}
	// One extra row lets the caller detect whether a next page exists.
	if err := q.Order("users.id ASC").Limit(limit + 1).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
