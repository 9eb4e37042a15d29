// Package memory implements the repository ports in process memory. It backs
// the STORE_DRIVER=memory mode used for local runs and end-to-end tests, and
// mirrors the per-document atomicity of the MongoDB repositories: every
// method is one critical section, and the two sides of a follow edge are two
// separate calls.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	if c.Followers == nil {
		c.Followers = []string{}
	}
	if c.Following == nil {
		c.Following = []string{}
	}
	return &c
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}

	stored := cloneUser(user)
	stored.ID = uuid.NewString()
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool { return u.Username == username })
}

func (r *UserRepository) findOne(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) FindByUsernameSubstring(_ context.Context, query string, limit int) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var matched []*domain.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.FullName), q) {
			matched = append(matched, cloneUser(u))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.ProfilePicture != nil {
		u.ProfilePicture = *update.ProfilePicture
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *UserRepository) IsFollowing(_ context.Context, actorID, targetID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target, ok := r.users[targetID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	return target.FollowedBy(actorID), nil
}

func (r *UserRepository) AddFollowing(_ context.Context, actorID, targetID string) error {
	return r.mutateEdges(actorID, func(u *domain.User) { u.Following = addToSet(u.Following, targetID) })
}

func (r *UserRepository) RemoveFollowing(_ context.Context, actorID, targetID string) error {
	return r.mutateEdges(actorID, func(u *domain.User) { u.Following = pull(u.Following, targetID) })
}

func (r *UserRepository) AddFollower(_ context.Context, targetID, followerID string) error {
	return r.mutateEdges(targetID, func(u *domain.User) { u.Followers = addToSet(u.Followers, followerID) })
}

func (r *UserRepository) RemoveFollower(_ context.Context, targetID, followerID string) error {
	return r.mutateEdges(targetID, func(u *domain.User) { u.Followers = pull(u.Followers, followerID) })
}

func (r *UserRepository) mutateEdges(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(u)
	return nil
}

func addToSet(set []string, v string) []string {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}

func pull(set []string, v string) []string {
	return slices.DeleteFunc(set, func(s string) bool { return s == v })
}
