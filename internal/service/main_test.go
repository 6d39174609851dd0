package service

import (
	"context"
	"errors"
	"testing"

	"lumagram/internal/models"
	"lumagram/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "VALIDATION_ERROR")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "UNAUTHORIZED")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "FORBIDDEN")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "NOT_FOUND")
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getProfileFn    func(context.Context, string, uint) (*models.User, error)
	searchFn        func(context.Context, string, int) ([]models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetProfile(ctx context.Context, username string, viewerID uint) (*models.User, error) {
	return s.getProfileFn(ctx, username, viewerID)
}
func (s *userRepoStub) Search(ctx context.Context, prefix string, limit int) ([]models.User, error) {
	return s.searchFn(ctx, prefix, limit)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsOpened: true}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getProfileFn: func(_ context.Context, username string, _ uint) (*models.User, error) {
			return &models.User{Username: username}, nil
		},
		searchFn: func(_ context.Context, _ string, _ int) ([]models.User, error) { return nil, nil },
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// subscriptionRepoStub is a stub for repository.SubscriptionRepository.
type subscriptionRepoStub struct {
	getFn                  func(context.Context, uint, uint) (*models.Subscription, error)
	upsertFn               func(context.Context, uint, uint, models.SubscriptionStatus) (*models.Subscription, error)
	acceptFn               func(context.Context, uint, uint) error
	deleteFn               func(context.Context, uint, uint) error
	deletePendingInboundFn func(context.Context, uint) error
	hasAcceptedFn          func(context.Context, uint, uint) (bool, error)
	listFollowersFn        func(context.Context, uint, uint, int) ([]models.User, error)
	listFollowsFn          func(context.Context, uint, uint, int) ([]models.User, error)
	listPendingFn          func(context.Context, uint, uint, int) ([]models.User, error)
}

func (s *subscriptionRepoStub) Get(ctx context.Context, followerID, followsToID uint) (*models.Subscription, error) {
	return s.getFn(ctx, followerID, followsToID)
}
func (s *subscriptionRepoStub) Upsert(ctx context.Context, followerID, followsToID uint, status models.SubscriptionStatus) (*models.Subscription, error) {
	return s.upsertFn(ctx, followerID, followsToID, status)
}
func (s *subscriptionRepoStub) Accept(ctx context.Context, followerID, followsToID uint) error {
	return s.acceptFn(ctx, followerID, followsToID)
}
func (s *subscriptionRepoStub) Delete(ctx context.Context, followerID, followsToID uint) error {
	return s.deleteFn(ctx, followerID, followsToID)
}
func (s *subscriptionRepoStub) DeletePendingInbound(ctx context.Context, userID uint) error {
	return s.deletePendingInboundFn(ctx, userID)
}
func (s *subscriptionRepoStub) HasAccepted(ctx context.Context, followerID, followsToID uint) (bool, error) {
	return s.hasAcceptedFn(ctx, followerID, followsToID)
}
func (s *subscriptionRepoStub) ListFollowers(ctx context.Context, userID, afterID uint, limit int) ([]models.User, error) {
	return s.listFollowersFn(ctx, userID, afterID, limit)
}
func (s *subscriptionRepoStub) ListFollows(ctx context.Context, userID, afterID uint, limit int) ([]models.User, error) {
	return s.listFollowsFn(ctx, userID, afterID, limit)
}
func (s *subscriptionRepoStub) ListPendingFollowers(ctx context.Context, userID, afterID uint, limit int) ([]models.User, error) {
	return s.listPendingFn(ctx, userID, afterID, limit)
}

func noopSubscriptionRepo() *subscriptionRepoStub {
	return &subscriptionRepoStub{
		getFn: func(_ context.Context, _, _ uint) (*models.Subscription, error) { return nil, nil },
		upsertFn: func(_ context.Context, followerID, followsToID uint, status models.SubscriptionStatus) (*models.Subscription, error) {
			return &models.Subscription{FollowerID: followerID, FollowsToID: followsToID, Status: status}, nil
		},
		acceptFn:               func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:               func(_ context.Context, _, _ uint) error { return nil },
		deletePendingInboundFn: func(_ context.Context, _ uint) error { return nil },
		hasAcceptedFn:          func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listFollowersFn:        func(_ context.Context, _, _ uint, _ int) ([]models.User, error) { return nil, nil },
		listFollowsFn:          func(_ context.Context, _, _ uint, _ int) ([]models.User, error) { return nil, nil },
		listPendingFn:          func(_ context.Context, _, _ uint, _ int) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint, uint) (*models.Post, error)
	listByUserFn      func(context.Context, uint, pagination.Cursor, int, uint) ([]*models.Post, error)
	feedFn            func(context.Context, uint, pagination.Cursor, int) ([]*models.Post, error)
	previewCommentsFn func(context.Context, []uint, int) (map[uint][]models.Comment, error)
	updateFn          func(context.Context, *models.Post) error
	deleteFn          func(context.Context, uint) error
	likeFn            func(context.Context, uint, uint) error
	unlikeFn          func(context.Context, uint, uint) error
	isLikedFn         func(context.Context, uint, uint) (bool, error)
	countLikesFn      func(context.Context, uint) (int64, error)
	listLikersFn      func(context.Context, uint, uint, int) ([]models.User, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, cursor pagination.Cursor, limit int, viewerID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, cursor, limit, viewerID)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID uint, cursor pagination.Cursor, limit int) ([]*models.Post, error) {
	return s.feedFn(ctx, viewerID, cursor, limit)
}
func (s *postRepoStub) PreviewComments(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Comment, error) {
	return s.previewCommentsFn(ctx, postIDs, perPost)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return s.countLikesFn(ctx, postID)
}
func (s *postRepoStub) ListLikers(ctx context.Context, postID, afterID uint, limit int) ([]models.User, error) {
	return s.listLikersFn(ctx, postID, afterID, limit)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, User: models.User{IsOpened: true}}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ pagination.Cursor, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		feedFn: func(_ context.Context, _ uint, _ pagination.Cursor, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		previewCommentsFn: func(_ context.Context, _ []uint, _ int) (map[uint][]models.Comment, error) {
			return map[uint][]models.Comment{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		likeFn:       func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:     func(_ context.Context, _, _ uint) error { return nil },
		isLikedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listLikersFn: func(_ context.Context, _, _ uint, _ int) ([]models.User, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, pagination.Cursor, int) ([]models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, cursor pagination.Cursor, limit int) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, cursor, limit)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint, _ pagination.Cursor, _ int) ([]models.Comment, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}
