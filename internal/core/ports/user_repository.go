package ports

import (
	"context"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// UserRepository persists accounts and both sides of every follow edge.
//
// Edge mutations are single-document atomic set operations; the two sides of
// one follow edge are written by two separate calls.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken or
	// domain.ErrUsernameTaken on a uniqueness conflict.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// FindByUsernameSubstring matches query case-insensitively and literally
	// against username or full name, returning at most limit users.
	FindByUsernameSubstring(ctx context.Context, query string, limit int) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)

	// IsFollowing tests actorID's membership in targetID's followers set.
	IsFollowing(ctx context.Context, actorID, targetID string) (bool, error)
	AddFollowing(ctx context.Context, actorID, targetID string) error
	RemoveFollowing(ctx context.Context, actorID, targetID string) error
	AddFollower(ctx context.Context, targetID, followerID string) error
	RemoveFollower(ctx context.Context, targetID, followerID string) error
}
