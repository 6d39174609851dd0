// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultAvatar is the blob reference served when a user never uploaded one.
const DefaultAvatar = "default_avatar.png"

// User represents a registered account.
// IsOpened controls profile visibility: an open profile is readable by
// anyone, a closed one only by accepted followers and the owner.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"unique;not null" json:"username"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Description string    `gorm:"size:200" json:"description"`
	Avatar      string    `json:"avatar"`
	IsOpened    bool      `gorm:"default:true" json:"is_opened"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`

	// NFollowers and NFollows are not persisted; computed at query time
	// from accepted subscription edges.
	NFollowers int `gorm:"->;-:migration" json:"nfollowers"`
	NFollows   int `gorm:"->;-:migration" json:"nfollows"`
	// FollowedByMe is the raw status of the viewer's outgoing edge toward
	// this user, if any (computed, empty when absent or anonymous).
	FollowedByMe string `gorm:"->;-:migration" json:"-"`
}

// AvatarOrDefault returns the stored avatar reference or the default one.
func (u *User) AvatarOrDefault() string {
	if u.Avatar == "" {
		return DefaultAvatar
	}
	return u.Avatar
}
