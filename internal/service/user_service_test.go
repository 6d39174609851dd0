package service

import (
	"context"
	"strings"
	"testing"

	"lumagram/internal/models"
	"lumagram/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUserService_GetProfileStatuses(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getProfileFn = func(_ context.Context, username string, _ uint) (*models.User, error) {
		return &models.User{
			ID:           7,
			Username:     username,
			IsOpened:     true,
			NFollowers:   3,
			NFollows:     1,
			FollowedByMe: string(models.SubscriptionPending),
		}, nil
	}
	svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)

	profile, err := svc.GetProfile(context.Background(), "alice", 99)
	require.NoError(t, err)
	assert.Equal(t, 3, profile.NFollowers)
	require.NotNil(t, profile.FollowedByMeStatus)
	assert.Equal(t, "Pending", *profile.FollowedByMeStatus)

	// Viewing yourself reports "self" regardless of edges.
	profile, err = svc.GetProfile(context.Background(), "alice", 7)
	require.NoError(t, err)
	require.NotNil(t, profile.FollowedByMeStatus)
	assert.Equal(t, "self", *profile.FollowedByMeStatus)
}

func TestUserService_GetProfileRejectedEdgeHidden(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getProfileFn = func(_ context.Context, username string, _ uint) (*models.User, error) {
		return &models.User{ID: 7, Username: username, IsOpened: true, FollowedByMe: string(models.SubscriptionRejected)}, nil
	}
	svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)

	profile, err := svc.GetProfile(context.Background(), "alice", 99)
	require.NoError(t, err)
	assert.Nil(t, profile.FollowedByMeStatus, "a rejected edge must look like no edge")
}

func TestUserService_GetProfileClosedGating(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getProfileFn = func(_ context.Context, username string, _ uint) (*models.User, error) {
		return &models.User{ID: 7, Username: username, IsOpened: false}, nil
	}

	t.Run("anonymous unauthorized", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)
		_, err := svc.GetProfile(context.Background(), "alice", 0)
		assertUnauthorizedError(t, err)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)
		_, err := svc.GetProfile(context.Background(), "alice", 99)
		assertForbiddenError(t, err)
	})

	t.Run("accepted follower allowed", func(t *testing.T) {
		t.Parallel()
		subs := noopSubscriptionRepo()
		subs.hasAcceptedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewUserService(users, subs, 20, 10)
		profile, err := svc.GetProfile(context.Background(), "alice", 99)
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
	})

	t.Run("owner allowed", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)
		profile, err := svc.GetProfile(context.Background(), "alice", 7)
		require.NoError(t, err)
		require.NotNil(t, profile.FollowedByMeStatus)
		assert.Equal(t, "self", *profile.FollowedByMeStatus)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("closing the profile purges pending inbound", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsOpened: true}, nil
		}
		purged := false
		subs := noopSubscriptionRepo()
		subs.deletePendingInboundFn = func(_ context.Context, userID uint) error {
			purged = true
			assert.Equal(t, uint(1), userID)
			return nil
		}
		svc := NewUserService(users, subs, 20, 10)

		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			IsOpened: ptr(false),
		})
		require.NoError(t, err)
		assert.False(t, user.IsOpened)
		assert.True(t, purged)
	})

	t.Run("staying closed does not purge", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsOpened: false}, nil
		}
		subs := noopSubscriptionRepo()
		subs.deletePendingInboundFn = func(_ context.Context, _ uint) error {
			t.Fatal("purge must not run when the profile was already closed")
			return nil
		}
		svc := NewUserService(users, subs, 20, 10)

		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			IsOpened: ptr(false),
		})
		require.NoError(t, err)
	})

	t.Run("description too long", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopSubscriptionRepo(), 20, 10)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:      1,
			Description: ptr(strings.Repeat("x", 201)),
		})
		assertValidationError(t, err)
	})

	t.Run("nil fields left unchanged", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FirstName: "Old", IsOpened: true}, nil
		}
		svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)

		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			LastName: ptr("Smith"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Old", user.FirstName)
		assert.Equal(t, "Smith", user.LastName)
		assert.True(t, user.IsOpened)
	})
}

func TestUserService_SearchRequiresQuery(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), noopSubscriptionRepo(), 20, 10)

	_, err := svc.Search(context.Background(), "")
	assertValidationError(t, err)

	_, err = svc.Search(context.Background(), "   ")
	assertValidationError(t, err)
}

func TestUserService_SearchMapsToShortUsers(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.searchFn = func(_ context.Context, prefix string, limit int) ([]models.User, error) {
		assert.Equal(t, "ann", prefix)
		assert.Equal(t, 10, limit)
		return []models.User{
			{Username: "anna", FirstName: "Anna"},
			{Username: "annabelle", Avatar: "custom.png"},
		}, nil
	}
	svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)

	results, err := svc.Search(context.Background(), "ann")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "anna", results[0].Username)
	assert.Equal(t, models.DefaultAvatar, results[0].Avatar)
	assert.Equal(t, "custom.png", results[1].Avatar)
}

func TestUserService_ListFollowersVisibility(t *testing.T) {
	t.Parallel()

	closedUser := func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 7, Username: username, IsOpened: false}, nil
	}

	t.Run("stranger forbidden on closed profile", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByUsernameFn = closedUser
		svc := NewUserService(users, noopSubscriptionRepo(), 20, 10)

		_, err := svc.ListFollowers(context.Background(), "alice", 99, pagination.Cursor{})
		assertForbiddenError(t, err)
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopSubscriptionRepo(), 20, 10)
		_, err := svc.ListFollowers(context.Background(), "ghost", 99, pagination.Cursor{})
		assertNotFoundError(t, err)
	})

	t.Run("owner gets page with next cursor", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByUsernameFn = closedUser
		subs := noopSubscriptionRepo()
		subs.listFollowersFn = func(_ context.Context, userID, afterID uint, limit int) ([]models.User, error) {
			assert.Equal(t, uint(7), userID)
			// Page size 2 plus the extra detection row.
			return []models.User{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}, {ID: 3, Username: "c"}}, nil
		}
		svc := NewUserService(users, subs, 2, 10)

		page, err := svc.ListFollowers(context.Background(), "alice", 7, pagination.Cursor{})
		require.NoError(t, err)
		require.Len(t, page.Results, 2)
		require.NotNil(t, page.Next)

		cursor, err := pagination.Decode(*page.Next)
		require.NoError(t, err)
		assert.Equal(t, uint(2), cursor.ID)
	})
}
