// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"lumagram/internal/cache"
	"lumagram/internal/models"
	"lumagram/internal/observability"
	"lumagram/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	ListByUser(ctx context.Context, userID uint, cursor pagination.Cursor, limit int, viewerID uint) ([]*models.Post, error)
	Feed(ctx context.Context, viewerID uint, cursor pagination.Cursor, limit int) ([]*models.Post, error)
	PreviewComments(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Comment, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	CountLikes(ctx context.Context, postID uint) (int64, error)
	ListLikers(ctx context.Context, postID uint, afterID uint, limit int) ([]models.User, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post

	var err error
	if viewerID == 0 {
		key := cache.PostKey(id)
		err = cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
			return r.applyPostDetails(readDB(r.db).WithContext(ctx), 0).
				Preload("User").
				First(&post, id).Error
		})
	} else {
		err = r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
			Preload("User").
			First(&post, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListByUser returns a user's posts newest first using keyset pagination on
// (created_at, id). The caller passes the page size; one extra row is fetched
// so the caller can detect whether a next page exists.
func (r *postRepository) ListByUser(ctx context.Context, userID uint, cursor pagination.Cursor, limit int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.user_id = ?", userID)
	q = applyPostCursor(q, cursor)
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(limit + 1).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Feed returns posts from every user the viewer has an accepted subscription
// toward, newest first with the same keyset scheme as ListByUser.
func (r *postRepository) Feed(ctx context.Context, viewerID uint, cursor pagination.Cursor, limit int) ([]*models.Post, error) {
	start := time.Now()
	var posts []*models.Post
	q := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.user_id IN (SELECT follows_to_id FROM subscriptions WHERE follower_id = ? AND status = ?)",
			viewerID, models.SubscriptionAccepted)
	q = applyPostCursor(q, cursor)
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(limit + 1).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.FeedPageLatency.Observe(time.Since(start).Seconds())
	return posts, nil
}

// applyPostCursor restricts the query to rows strictly older than the cursor
// position in (created_at DESC, id DESC) order.
func applyPostCursor(db *gorm.DB, cursor pagination.Cursor) *gorm.DB {
	if cursor.IsZero() || cursor.CreatedAt == nil {
		return db
	}
	return db.Where(
		"(posts.created_at < ?) OR (posts.created_at = ? AND posts.id < ?)",
		*cursor.CreatedAt, *cursor.CreatedAt, cursor.ID,
	)
}

// applyPostDetails adds subqueries to fetch the like count and the viewer's
// like status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as n_likes"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as is_liked_by_me", viewerID)
	}

	return db.Select(selectQuery + ", false as is_liked_by_me")
}

// PreviewComments fetches the newest perPost comments for every post in one
// window query, returned oldest first within each post. Comment owners are
// batch-loaded separately since window subqueries cannot be preloaded.
func (r *postRepository) PreviewComments(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Comment, error) {
	if len(postIDs) == 0 || perPost <= 0 {
		return map[uint][]models.Comment{}, nil
	}
	defer observability.TrackQuery("top_n_window", "comments")()

	var comments []models.Comment
	err := readDB(r.db).WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT comments.*,
			       ROW_NUMBER() OVER (PARTITION BY post_id ORDER BY created_at DESC, id DESC) AS recency_rank
			FROM comments
			WHERE post_id IN ?
		) ranked
		WHERE recency_rank <= ?
		ORDER BY post_id, created_at ASC, id ASC`,
		postIDs, perPost,
	).Scan(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.attachCommentOwners(ctx, comments); err != nil {
		return nil, err
	}

	byPost := make(map[uint][]models.Comment, len(postIDs))
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	return byPost, nil
}

func (r *postRepository) attachCommentOwners(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(comments))
	seen := map[uint]struct{}{}
	for _, c := range comments {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		ids = append(ids, c.UserID)
	}

	var users []models.User
	if err := readDB(r.db).WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return models.NewInternalError(err)
	}

	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range comments {
		comments[i].User = byID[comments[i].UserID]
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// Like inserts the like if absent; an existing like makes this a no-op.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	like := models.Like{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// Unlike removes the like if present; a missing like makes this a no-op.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ListLikers returns the users who liked the post, ordered by user id
// ascending, starting after afterID.
func (r *postRepository) ListLikers(ctx context.Context, postID uint, afterID uint, limit int) ([]models.User, error) {
	var users []models.User
	q := readDB(r.db).WithContext(ctx).
		Table("users").
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ?", postID)
	if afterID > 0 {
		q = q.Where("users.id > ?", afterID)
	}
	if err := q.Order("users.id ASC").Limit(limit + 1).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
