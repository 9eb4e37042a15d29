package ports

import (
	"context"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// PostRepository persists posts together with their embedded likes and comments.
type PostRepository interface {
	// Create inserts post and assigns its ID.
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error

	// AddLike atomically adds userID to the like set. It reports false when
	// the user had already liked the post.
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	// RemoveLike atomically removes userID from the like set. It reports
	// false when the user was not in it.
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	// PrependComment atomically inserts comment at the head of the comment
	// sequence and returns the updated post.
	PrependComment(ctx context.Context, postID string, comment domain.Comment) (*domain.Post, error)

	// FindByAuthors returns posts by any of authorIDs, newest first, skipping
	// skip posts and returning at most limit (0 = no limit), plus the total
	// number of matching posts.
	FindByAuthors(ctx context.Context, authorIDs []string, skip, limit int) ([]*domain.Post, int64, error)
}
