// Package service contains the application's business logic.
package service

import (
	"context"

	"lumagram/internal/models"
	"lumagram/internal/repository"
)

// canViewContent reports whether the viewer may read the owner's posts,
// comments, likes and follow listings. Open profiles are readable by anyone;
// closed ones only by the owner and accepted followers.
func canViewContent(ctx context.Context, subs repository.SubscriptionRepository, viewerID uint, owner *models.User) (bool, error) {
	if owner.IsOpened {
		return true, nil
	}
	if viewerID == 0 {
		return false, nil
	}
	if viewerID == owner.ID {
		return true, nil
	}
	return subs.HasAccepted(ctx, viewerID, owner.ID)
}

// requireContentAccess returns nil when the viewer may read the owner's
// content, an unauthorized error for anonymous viewers and a forbidden error
// for authenticated ones.
func requireContentAccess(ctx context.Context, subs repository.SubscriptionRepository, viewerID uint, owner *models.User) error {
	ok, err := canViewContent(ctx, subs, viewerID, owner)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if viewerID == 0 {
		return models.NewUnauthorizedError("Sign in to view this profile")
	}
	return models.NewForbiddenError("This profile is closed")
}
