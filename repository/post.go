package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"time"

	"postsvc/models"
	"postsvc/storage"

	"gorm.io/gorm"
)

// DefaultWindowHours is the trailing window applied when a multi-user
// aggregation is requested without one. The HTTP layer has its own, larger
// default; both are intentional.
const DefaultWindowHours = 24

// Clock abstracts time so write stamping is testable.
type Clock func() time.Time

// PostRepository defines the interface for post data operations. Read methods
// return an empty slice when nothing matches; errors wrap one of the
// models.Err* kinds so failure stays distinguishable from absence.
type PostRepository interface {
	GetByPostID(ctx context.Context, postID string) ([]models.Post, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Post, error)
	GetByUserIDWithinWindow(ctx context.Context, userID string, windowHours int) ([]models.Post, error)
	GetByUserListWithinWindow(ctx context.Context, userIDs []string, windowHours int) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) (int64, error)
	DeleteByPostID(ctx context.Context, postID string) (int64, error)
}

type postRepository struct {
	db    *gorm.DB
	store storage.ObjectStore
	now   Clock
}

// NewPostRepository creates a post repository backed by db, with store used
// for the delete cascade.
func NewPostRepository(db *gorm.DB, store storage.ObjectStore) PostRepository {
	return NewPostRepositoryWithClock(db, store, time.Now)
}

// NewPostRepositoryWithClock is NewPostRepository with an explicit clock.
func NewPostRepositoryWithClock(db *gorm.DB, store storage.ObjectStore, clock Clock) PostRepository {
	return &postRepository{db: db, store: store, now: clock}
}

func (r *postRepository) GetByPostID(ctx context.Context, postID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&posts).Error
	if err != nil {
		return nil, storeError("get post by post id", err)
	}
	return posts, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("time_stamp DESC").
		Find(&posts).Error
	if err != nil {
		return nil, storeError("get posts by user id", err)
	}
	return posts, nil
}

// GetByUserIDWithinWindow returns userID's posts newer than now minus
// windowHours. The cutoff is exclusive: a post stamped exactly at the
// boundary is not returned.
func (r *postRepository) GetByUserIDWithinWindow(ctx context.Context, userID string, windowHours int) ([]models.Post, error) {
	cutoff := r.now().Add(-time.Duration(windowHours) * time.Hour)

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND time_stamp > ?", userID, cutoff).
		Order("time_stamp DESC").
		Find(&posts).Error
	if err != nil {
		return nil, storeError("get posts by user id within window", err)
	}
	return posts, nil
}

// GetByUserListWithinWindow aggregates the windowed posts of every user in
// userIDs (caller order, duplicates included) into one collection ordered by
// time_stamp descending. Equal timestamps order by post_id ascending. A
// windowHours of zero or less means DefaultWindowHours.
func (r *postRepository) GetByUserListWithinWindow(ctx context.Context, userIDs []string, windowHours int) ([]models.Post, error) {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}

	var merged []models.Post
	for _, userID := range userIDs {
		posts, err := r.GetByUserIDWithinWindow(ctx, userID, windowHours)
		if err != nil {
			return nil, err
		}
		merged = append(merged, posts...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].TimeStamp.Equal(merged[j].TimeStamp) {
			return merged[i].PostID < merged[j].PostID
		}
		return merged[i].TimeStamp.After(merged[j].TimeStamp)
	})

	return merged, nil
}

// Create inserts one post and returns the number of rows written. The stored
// time_stamp is always the server clock at call time; any caller-supplied
// value is discarded. Only recognized columns are inserted, and photo_url
// only when present.
func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	post.TimeStamp = r.now()

	columns := []string{"post_id", "user_id", "post_text", "time_stamp"}
	if post.PhotoURL != "" {
		columns = append(columns, "photo_url")
	}

	res := r.db.WithContext(ctx).Select(columns).Create(post)
	if res.Error != nil {
		return 0, storeError("create post", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByPostID removes the post row and, only when a row was actually
// deleted, issues a best-effort delete of the post's object under the same
// key. Object-store failure is logged and never changes the returned count.
func (r *postRepository) DeleteByPostID(ctx context.Context, postID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Post{})
	if res.Error != nil {
		return 0, storeError("delete post by post id", res.Error)
	}

	if res.RowsAffected > 0 && r.store != nil {
		if err := r.store.DeleteObject(ctx, postID); err != nil {
			slog.Warn("photo cleanup failed after post delete",
				"post_id", postID,
				"error", err)
		}
	}

	return res.RowsAffected, nil
}

// storeError maps a gorm error onto the repository error taxonomy.
// Connection-level failures become ErrStoreUnavailable, everything else
// ErrStatement.
func storeError(op string, err error) error {
	kind := models.ErrStatement
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.As(err, &netErr) {
		kind = models.ErrStoreUnavailable
	}
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}
