package ports

import (
	"context"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// ProfileView is a user with both edge lists populated.
type ProfileView struct {
	User      *domain.User
	Followers []domain.UserSummary
	Following []domain.UserSummary
}

// UpdateProfileInput carries a profile edit. Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID   string
	FullName *string
	Bio      *string
	Picture  *MediaUpload
}

// FollowResult reports the target's profile after a follow toggle and the
// direction the toggle went.
type FollowResult struct {
	Target    *ProfileView
	Following bool
}

// UserService covers profiles and the social graph.
type UserService interface {
	GetByID(ctx context.Context, id string) (*ProfileView, error)
	GetByUsername(ctx context.Context, username string) (*ProfileView, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*ProfileView, error)
	ToggleFollow(ctx context.Context, actorID, targetUsername string) (*FollowResult, error)
	IsFollowing(ctx context.Context, actorID, targetID string) (bool, error)
	Followers(ctx context.Context, username string) ([]domain.UserSummary, error)
	Following(ctx context.Context, username string) ([]domain.UserSummary, error)
}
