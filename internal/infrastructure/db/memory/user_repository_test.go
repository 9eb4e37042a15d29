package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

func mustCreate(t *testing.T, r *UserRepository, username string) *domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository_CreateUniqueness(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	alice := mustCreate(t, r, "alice")
	assert.NotEmpty(t, alice.ID)
	assert.NotNil(t, alice.Followers)

	_, err := r.Create(ctx, &domain.User{Username: "other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = r.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	alice := mustCreate(t, r, "alice")

	got, err := r.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	got.Following = append(got.Following, "x")
	got.FullName = "mutated"

	again, err := r.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Following)
	assert.Equal(t, "alice", again.FullName)
}

func TestUserRepository_EdgesAreSets(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	alice := mustCreate(t, r, "alice")
	bob := mustCreate(t, r, "bob")

	require.NoError(t, r.AddFollowing(ctx, alice.ID, bob.ID))
	require.NoError(t, r.AddFollowing(ctx, alice.ID, bob.ID))
	require.NoError(t, r.AddFollower(ctx, bob.ID, alice.ID))

	a, _ := r.FindByID(ctx, alice.ID)
	assert.Equal(t, []string{bob.ID}, a.Following)

	ok, err := r.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.RemoveFollowing(ctx, alice.ID, bob.ID))
	require.NoError(t, r.RemoveFollower(ctx, bob.ID, alice.ID))
	require.NoError(t, r.RemoveFollower(ctx, bob.ID, alice.ID))

	ok, err = r.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, r.AddFollower(ctx, "ghost", alice.ID), domain.ErrUserNotFound)
	_, err = r.IsFollowing(ctx, alice.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_FindByUsernameSubstring(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	mustCreate(t, r, "zed_alpha")
	mustCreate(t, r, "Alpha")
	mustCreate(t, r, "beta")

	got, err := r.FindByUsernameSubstring(ctx, "ALPHA", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Username)
	assert.Equal(t, "zed_alpha", got[1].Username)

	got, err = r.FindByUsernameSubstring(ctx, "a", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	alice := mustCreate(t, r, "alice")

	bio := "hi"
	got, err := r.UpdateProfile(ctx, alice.ID, domain.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Bio)
	assert.Equal(t, "alice", got.FullName)

	_, err = r.UpdateProfile(ctx, "ghost", domain.ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_FindByIDsSkipsUnknownAndDuplicates(t *testing.T) {
	r := NewUserRepository()
	alice := mustCreate(t, r, "alice")

	got, err := r.FindByIDs(context.Background(), []string{alice.ID, "ghost", alice.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alice.ID, got[0].ID)
}
