// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"lumagram/internal/models"
	"lumagram/internal/pagination"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, cursor pagination.Cursor, limit int) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Preload("User").First(comment, comment.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := readDB(r.db).WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns a post's comments newest first with keyset pagination on
// (created_at, id), fetching one extra row for next-page detection.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, cursor pagination.Cursor, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	q := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID)
	if !cursor.IsZero() && cursor.CreatedAt != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			*cursor.CreatedAt, *cursor.CreatedAt, cursor.ID)
	}
	err := q.Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
