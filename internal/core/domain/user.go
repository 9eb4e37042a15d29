package domain

import (
	"slices"
	"time"
)

// User is an account together with both sides of its follow edges.
// Followers and Following hold user ids; a user never appears in its own sets.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FullName       string
	Bio            string
	ProfilePicture string
	Followers      []string
	Following      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FollowersCount is derived from the edge list, never stored.
func (u *User) FollowersCount() int { return len(u.Followers) }

// FollowingCount is derived from the edge list, never stored.
func (u *User) FollowingCount() int { return len(u.Following) }

// Follows reports whether u has id in its following set.
func (u *User) Follows(id string) bool { return slices.Contains(u.Following, id) }

// FollowedBy reports whether id is in u's followers set.
func (u *User) FollowedBy(id string) bool { return slices.Contains(u.Followers, id) }

// Summary returns the public card used when a user is embedded in another
// resource (post author, commenter, follower lists).
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
	}
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID             string
	Username       string
	FullName       string
	ProfilePicture string
	Bio            string
}

// ProfileUpdate carries the optional fields of a profile edit. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	FullName       *string
	Bio            *string
	ProfilePicture *string
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p.FullName == nil && p.Bio == nil && p.ProfilePicture == nil
}
