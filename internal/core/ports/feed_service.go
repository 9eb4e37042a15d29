package ports

import (
	"context"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// FeedInput carries feed pagination. Page is 1-based; Limit is capped by the service.
type FeedInput struct {
	UserID string
	Page   int
	Limit  int
}

// FeedResult is one page of a user's feed.
type FeedResult struct {
	Posts []PostView
	Total int64
	Page  int
	Limit int
	Pages int
}

// FeedService assembles read views across the social graph and posts.
type FeedService interface {
	GetFeed(ctx context.Context, input FeedInput) (*FeedResult, error)
	GetUserPosts(ctx context.Context, username string) ([]PostView, error)
	SearchUsers(ctx context.Context, query string) ([]domain.UserSummary, error)
}
