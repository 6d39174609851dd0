// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// SubscriptionStatus is the state of a follow edge.
type SubscriptionStatus string

const (
	// SubscriptionAccepted means the follower sees the target's content.
	SubscriptionAccepted SubscriptionStatus = "accepted"
	// SubscriptionPending means the target has not approved the request yet.
	SubscriptionPending SubscriptionStatus = "pending"
	// SubscriptionRejected means the target refused the request.
	SubscriptionRejected SubscriptionStatus = "rejected"
)

// Display returns the status in the capitalized form the API exposes.
func (s SubscriptionStatus) Display() string {
	switch s {
	case SubscriptionAccepted:
		return "Accepted"
	case SubscriptionPending:
		return "Pending"
	case SubscriptionRejected:
		return "Rejected"
	}
	return string(s)
}

// Subscription is a directed follow edge from Follower to FollowsTo.
// At most one edge may exist per ordered (follower, follows_to) pair.
type Subscription struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	FollowerID  uint               `gorm:"not null;uniqueIndex:idx_follower_follows_to" json:"follower_id"`
	FollowsToID uint               `gorm:"not null;uniqueIndex:idx_follower_follows_to" json:"follows_to_id"`
	Status      SubscriptionStatus `gorm:"type:varchar(20);not null" json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	FollowsTo User `gorm:"foreignKey:FollowsToID;constraint:OnDelete:CASCADE" json:"follows_to,omitempty"`
}
