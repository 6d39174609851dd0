package service

import (
	"context"
	"strings"

	"lumagram/internal/models"
	"lumagram/internal/pagination"
	"lumagram/internal/repository"
)

const maxPostDescriptionLen = 500

// PostService implements post publishing, the per-user listing, the
// personalized feed and like toggling.
type PostService struct {
	postRepo        repository.PostRepository
	userRepo        repository.UserRepository
	subRepo         repository.SubscriptionRepository
	postsPerPage    int
	likesPerPage    int
	previewComments int
}

type CreatePostInput struct {
	UserID      uint
	Picture     string
	Description string
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Description *string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	postsPerPage int,
	likesPerPage int,
	previewComments int,
) *PostService {
	return &PostService{
		postRepo:        postRepo,
		userRepo:        userRepo,
		subRepo:         subRepo,
		postsPerPage:    postsPerPage,
		likesPerPage:    likesPerPage,
		previewComments: previewComments,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostSummary, error) {
	if strings.TrimSpace(in.Picture) == "" {
		return nil, models.NewValidationError("Picture is required")
	}
	if len(in.Description) > maxPostDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 500 characters)")
	}

	owner, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      in.UserID,
		Picture:     in.Picture,
		Description: in.Description,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.User = *owner

	summary := models.PostSummaryOf(post, nil)
	return &summary, nil
}

// UpdatePost changes a post's description. The picture is immutable, so the
// description is the only mutable field.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Description != nil {
		if len(*in.Description) > maxPostDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 500 characters)")
		}
		post.Description = *in.Description
		if err := s.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}
	}

	detail := models.PostDetailOf(post)
	return &detail, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// GetPost returns the detail view of a single post, gated by the owner's
// profile visibility. The owner is re-read through the user repository rather
// than taken from the post row: anonymous reads serve posts from a cache
// snapshot, and a snapshot taken before the owner closed their profile would
// otherwise keep the post visible until the entry expires.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	if err := requireContentAccess(ctx, s.subRepo, viewerID, owner); err != nil {
		return nil, err
	}
	post.User = *owner
	detail := models.PostDetailOf(post)
	return &detail, nil
}

// ListUserPosts returns a page of one user's posts, newest first, each with
// its preview comment window.
func (s *PostService) ListUserPosts(ctx context.Context, username string, viewerID uint, cursor pagination.Cursor) (pagination.Page[models.PostSummary], error) {
	var empty pagination.Page[models.PostSummary]

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

	posts, err := s.postRepo.ListByUser(ctx, owner.ID, cursor, s.postsPerPage, viewerID)
	if err != nil {
		return empty, err
	}
	return s.summaryPage(ctx, posts)
}

// Feed returns a page of posts from every user the viewer follows with an
// accepted edge, newest first, each with its preview comment window.
func (s *PostService) Feed(ctx context.Context, viewerID uint, cursor pagination.Cursor) (pagination.Page[models.PostSummary], error) {
	posts, err := s.postRepo.Feed(ctx, viewerID, cursor, s.postsPerPage)
	if err != nil {
		return pagination.Page[models.PostSummary]{}, err
	}
	return s.summaryPage(ctx, posts)
}

// summaryPage builds the page, then fills the preview windows for the posts
// actually returned in one batch query.
func (s *PostService) summaryPage(ctx context.Context, posts []*models.Post) (pagination.Page[models.PostSummary], error) {
	page := pagination.NewPage(posts, s.postsPerPage, func(last *models.Post) pagination.Cursor {
		createdAt := last.CreatedAt
		return pagination.Cursor{CreatedAt: &createdAt, ID: last.ID}
	})

	ids := make([]uint, 0, len(page.Results))
	for _, p := range page.Results {
		ids = append(ids, p.ID)
	}
	previews, err := s.postRepo.PreviewComments(ctx, ids, s.previewComments)
	if err != nil {
		return pagination.Page[models.PostSummary]{}, err
	}

	return pagination.Map(page, func(p *models.Post) models.PostSummary {
		window := previews[p.ID]
		views := make([]models.CommentView, 0, len(window))
		for i := range window {
			views = append(views, models.CommentViewOf(&window[i]))
		}
		return models.PostSummaryOf(p, views)
	}), nil
}

// LikePost records the viewer's like if absent and returns the post's fresh
// like count. Liking an already liked post only re-reads the count.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (int64, error) {
	if err := s.requirePostContentAccess(ctx, postID, userID); err != nil {
		return 0, err
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return 0, err
	}
	return s.postRepo.CountLikes(ctx, postID)
}

// UnlikePost removes the viewer's like if present and returns the fresh count.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (int64, error) {
	if err := s.requirePostContentAccess(ctx, postID, userID); err != nil {
		return 0, err
	}
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return 0, err
	}
	return s.postRepo.CountLikes(ctx, postID)
}

// ListLikers returns a page of the users who liked the post, gated by the
// post owner's visibility.
func (s *PostService) ListLikers(ctx context.Context, postID, viewerID uint, cursor pagination.Cursor) (pagination.Page[models.ShortUser], error) {
	var empty pagination.Page[models.ShortUser]

	if err := s.requirePostContentAccess(ctx, postID, viewerID); err != nil {
		return empty, err
	}
	users, err := s.postRepo.ListLikers(ctx, postID, cursor.ID, s.likesPerPage)
	if err != nil {
		return empty, err
	}
	return shortUserPage(users, s.likesPerPage), nil
}

// requirePostContentAccess resolves the post's owner and applies the profile
// visibility policy to the viewer. The owner comes from the user repository,
// never from the post row, so a cached post snapshot cannot serve a stale
// open/closed flag.
func (s *PostService) requirePostContentAccess(ctx context.Context, postID, viewerID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	owner, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		return err
	}
	return requireContentAccess(ctx, s.subRepo, viewerID, owner)
}
