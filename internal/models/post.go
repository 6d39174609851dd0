// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post is a picture with an optional description.
// The picture reference is immutable after creation.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Picture     string    `gorm:"not null" json:"picture"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`

	// NLikes is not persisted; computed at query time
	NLikes int `gorm:"->;-:migration" json:"nlikes"`
	// IsLikedByMe indicates whether the requesting user liked this post
	// (computed, always false for anonymous viewers)
	IsLikedByMe bool `gorm:"->;-:migration" json:"is_liked_by_me"`
}
