// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxCommentTextLen bounds the length of comment text.
const MaxCommentTextLen = 200

// Comment is a user's comment under a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text      string    `gorm:"size:200;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
