package service

import (
	"context"
	"fmt"
	"strings"

	"lumagram/internal/models"
	"lumagram/internal/pagination"
	"lumagram/internal/repository"
)

// CommentService implements commenting under posts, gated by the post
// owner's profile visibility.
type CommentService struct {
	commentRepo     repository.CommentRepository
	postRepo        repository.PostRepository
	userRepo        repository.UserRepository
	subRepo         repository.SubscriptionRepository
	commentsPerPage int
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Text      string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	commentsPerPage int,
) *CommentService {
	return &CommentService{
		commentRepo:     commentRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		subRepo:         subRepo,
		commentsPerPage: commentsPerPage,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.CommentView, error) {
	if err := validateCommentText(in.Text); err != nil {
		return nil, err
	}
	if err := s.requirePostContentAccess(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID: in.UserID,
		PostID: in.PostID,
		Text:   in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	view := models.CommentViewOf(comment)
	return &view, nil
}

// ListComments returns a page of a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID, viewerID uint, cursor pagination.Cursor) (pagination.Page[models.CommentView], error) {
	var empty pagination.Page[models.CommentView]

	if err := s.requirePostContentAccess(ctx, postID, viewerID); err != nil {
		return empty, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, cursor, s.commentsPerPage)
	if err != nil {
		return empty, err
	}

	page := pagination.NewPage(comments, s.commentsPerPage, func(last models.Comment) pagination.Cursor {
		createdAt := last.CreatedAt
		return pagination.Cursor{CreatedAt: &createdAt, ID: last.ID}
	})
	return pagination.Map(page, func(cm models.Comment) models.CommentView {
		return models.CommentViewOf(&cm)
	}), nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}
	if err := validateCommentText(in.Text); err != nil {
		return nil, err
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	view := models.CommentViewOf(comment)
	return &view, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Text is required")
	}
	if len(text) > models.MaxCommentTextLen {
		return models.NewValidationError(
			fmt.Sprintf("Comment too long (max %d characters)", models.MaxCommentTextLen))
	}
	return nil
}

// requirePostContentAccess mirrors the post service gate: the owner is read
// through the user repository so a cached post snapshot cannot serve a stale
// open/closed flag.
func (s *CommentService) requirePostContentAccess(ctx context.Context, postID, viewerID uint) error {
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
