package service

import (
	"context"
	"strings"

	"lumagram/internal/models"
	"lumagram/internal/pagination"
	"lumagram/internal/repository"
	"lumagram/internal/validation"
)

// UserService implements profile reads, profile updates and user search.
type UserService struct {
	userRepo     repository.UserRepository
	subRepo      repository.SubscriptionRepository
	usersPerPage int
	searchLimit  int
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	UserID      uint
	FirstName   *string
	LastName    *string
	Description *string
	IsOpened    *bool
	Avatar      *string
}

func NewUserService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	usersPerPage int,
	searchLimit int,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		subRepo:      subRepo,
		usersPerPage: usersPerPage,
		searchLimit:  searchLimit,
	}
}

// GetProfile returns the enriched profile view of a user, gated like the
// rest of the user's content: a closed profile is only readable by its owner
// and accepted followers.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID uint) (*models.Profile, error) {
	user, err := s.userRepo.GetProfile(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}
	if err := requireContentAccess(ctx, s.subRepo, viewerID, user); err != nil {
		return nil, err
	}
	profile := models.ProfileOf(user, viewerID)
	return &profile, nil
}

func (s *UserService) GetMe(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's own profile.
// Switching the profile from open to closed drops every pending inbound
// request so a stale request cannot be approved after the switch.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Description != nil {
		if err := validation.ValidateDescription(*in.Description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Description = *in.Description
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	wasOpened := user.IsOpened
	if in.IsOpened != nil {
		user.IsOpened = *in.IsOpened
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if wasOpened && !user.IsOpened {
		if err := s.subRepo.DeletePendingInbound(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Search returns up to searchLimit users whose username starts with the query,
// ordered alphabetically. The query is mandatory.
func (s *UserService) Search(ctx context.Context, query string) ([]models.ShortUser, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("you must provide the 'search' parameter")
	}

	users, err := s.userRepo.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]models.ShortUser, 0, len(users))
	for i := range users {
		results = append(results, models.ShortUserOf(&users[i]))
	}
	return results, nil
}

// ListFollowers returns a page of the user's accepted followers. Closed
// profiles only expose the listing to the owner and accepted followers.
func (s *UserService) ListFollowers(ctx context.Context, username string, viewerID uint, cursor pagination.Cursor) (pagination.Page[models.ShortUser], error) {
	return s.listEdge(ctx, username, viewerID, cursor, s.subRepo.ListFollowers)
}

// ListFollows returns a page of the users the target follows, gated the same
// way as ListFollowers.
func (s *UserService) ListFollows(ctx context.Context, username string, viewerID uint, cursor pagination.Cursor) (pagination.Page[models.ShortUser], error) {
	return s.listEdge(ctx, username, viewerID, cursor, s.subRepo.ListFollows)
}

func (s *UserService) listEdge(
	ctx context.Context,
	username string,
	viewerID uint,
	cursor pagination.Cursor,
	list func(ctx context.Context, userID uint, afterID uint, limit int) ([]models.User, error),
) (pagination.Page[models.ShortUser], error) {
	var empty pagination.Page[models.ShortUser]

	owner, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return empty, err
	}
	if owner == nil {
		return empty, models.NewNotFoundError("User", username)
	}
	if err := requireContentAccess(ctx, s.subRepo, viewerID, owner); err != nil {
		return empty, err
	}

	users, err := list(ctx, owner.ID, cursor.ID, s.usersPerPage)
	if err != nil {
		return empty, err
	}
	return shortUserPage(users, s.usersPerPage), nil
}

// ListPendingFollowers returns the caller's own inbound pending requests.
func (s *UserService) ListPendingFollowers(ctx context.Context, userID uint, cursor pagination.Cursor) (pagination.Page[models.ShortUser], error) {
	users, err := s.subRepo.ListPendingFollowers(ctx, userID, cursor.ID, s.usersPerPage)
	if err != nil {
		return pagination.Page[models.ShortUser]{}, err
	}
	return shortUserPage(users, s.usersPerPage), nil
}

func shortUserPage(users []models.User, limit int) pagination.Page[models.ShortUser] {
	page := pagination.NewPage(users, limit, func(last models.User) pagination.Cursor {
		return pagination.Cursor{ID: last.ID}
	})
	return pagination.Map(page, func(u models.User) models.ShortUser {
		return models.ShortUserOf(&u)
	})
}
