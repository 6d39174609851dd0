package repository

import (
	"fmt"
	"testing"
	"time"

	"lumagram/internal/database"
	"lumagram/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed-password",
		IsOpened: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createClosedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := createTestUser(t, db, username)
	require.NoError(t, db.Model(user).Update("is_opened", false).Error)
	user.IsOpened = false
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      userID,
		Picture:     "pic.png",
		Description: "a post",
	}
	require.NoError(t, db.Create(post).Error)
	if !createdAt.IsZero() {
		require.NoError(t, db.Model(post).Update("created_at", createdAt).Error)
		post.CreatedAt = createdAt
	}
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, userID, postID uint, text string, createdAt time.Time) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		UserID: userID,
		PostID: postID,
		Text:   text,
	}
	require.NoError(t, db.Create(comment).Error)
	if !createdAt.IsZero() {
		require.NoError(t, db.Model(comment).Update("created_at", createdAt).Error)
		comment.CreatedAt = createdAt
	}
	return comment
}

func createEdge(t *testing.T, db *gorm.DB, followerID, followsToID uint, status models.SubscriptionStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.Subscription{
		FollowerID:  followerID,
		FollowsToID: followsToID,
		Status:      status,
	}).Error)
}
