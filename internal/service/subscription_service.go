package service

import (
	"context"
	"errors"

	"lumagram/internal/models"
	"lumagram/internal/repository"
)

// SubscriptionService implements the follow workflow: subscribing toward open
// and closed profiles, cancelling, and approving or rejecting inbound
// requests.
type SubscriptionService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
}

func NewSubscriptionService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
) *SubscriptionService {
	return &SubscriptionService{userRepo: userRepo, subRepo: subRepo}
}

// Subscribe creates or revives the viewer's edge toward the target. An open
// target accepts immediately; a closed one leaves the edge pending. An
// existing accepted or pending edge is untouched. Returns the target's
// refreshed profile as the viewer now sees it.
func (s *SubscriptionService) Subscribe(ctx context.Context, viewerID uint, targetUsername string) (*models.Profile, error) {
	target, err := s.lookupOther(ctx, viewerID, targetUsername)
	if err != nil {
		return nil, err
	}

	status := models.SubscriptionAccepted
	if !target.IsOpened {
		status = models.SubscriptionPending
	}

	if _, err := s.subRepo.Upsert(ctx, viewerID, target.ID, status); err != nil {
		return nil, err
	}

	return s.refreshedProfile(ctx, targetUsername, viewerID)
}

// Unsubscribe drops the viewer's edge toward the target whatever its status,
// so it also withdraws a pending request. Returns the refreshed profile.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, viewerID uint, targetUsername string) (*models.Profile, error) {
	target, err := s.lookupOther(ctx, viewerID, targetUsername)
	if err != nil {
		return nil, err
	}

	if err := s.subRepo.Delete(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}

	return s.refreshedProfile(ctx, targetUsername, viewerID)
}

// Accept approves the follower's request toward the caller. A missing or
// rejected edge yields NotFound; re-accepting an accepted edge succeeds.
func (s *SubscriptionService) Accept(ctx context.Context, ownerID uint, followerUsername string) error {
	follower, err := s.lookupOther(ctx, ownerID, followerUsername)
	if err != nil {
		return err
	}
	if err := s.subRepo.Accept(ctx, follower.ID, ownerID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return models.NewNotFoundError("Subscription request from", followerUsername)
		}
		return err
	}
	return nil
}

// Reject removes the follower's edge toward the caller. Rejecting a missing
// edge is a no-op success.
func (s *SubscriptionService) Reject(ctx context.Context, ownerID uint, followerUsername string) error {
	follower, err := s.lookupOther(ctx, ownerID, followerUsername)
	if err != nil {
		return err
	}
	return s.subRepo.Delete(ctx, follower.ID, ownerID)
}

// lookupOther resolves the username and rejects requests a user makes over
// themselves.
func (s *SubscriptionService) lookupOther(ctx context.Context, viewerID uint, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	if user.ID == viewerID {
		return nil, models.NewValidationError("you can't make this request over yourself")
	}
	return user, nil
}

func (s *SubscriptionService) refreshedProfile(ctx context.Context, username string, viewerID uint) (*models.Profile, error) {
	target, err := s.userRepo.GetProfile(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}
	profile := models.ProfileOf(target, viewerID)
	return &profile, nil
}
