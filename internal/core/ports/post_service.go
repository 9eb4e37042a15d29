package ports

import (
	"context"
	"time"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// CommentView is a comment with its author populated.
type CommentView struct {
	ID        string
	User      domain.UserSummary
	Text      string
	CreatedAt time.Time
}

// PostView is a post with its author and commenters populated.
type PostView struct {
	ID        string
	Author    domain.UserSummary
	Content   string
	Image     string
	Likes     []string
	Comments  []CommentView
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePostInput carries a new post. Image is optional.
type CreatePostInput struct {
	AuthorID string
	Content  string
	Image    *MediaUpload
}

// LikeResult reports the post after a like toggle and whether the caller now likes it.
type LikeResult struct {
	Post  *PostView
	Liked bool
}

// PostService covers posts, likes and comments.
type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*PostView, error)
	GetPost(ctx context.Context, id string) (*PostView, error)
	ToggleLike(ctx context.Context, postID, userID string) (*LikeResult, error)
	AddComment(ctx context.Context, postID, userID, text string) (*PostView, error)
	DeletePost(ctx context.Context, postID, requesterID string) error
}
