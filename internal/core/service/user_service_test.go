package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
	"github.com/Sirpyerre/social-network/internal/infrastructure/db/memory"
)

func edges(t *testing.T, f *fixture, id string) (followers, following []string) {
	t.Helper()
	u, err := f.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	return u.Followers, u.Following
}

func TestUserService_ToggleFollow_FollowsThenUnfollows(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	res, err := f.user.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.Equal(t, bob.ID, res.Target.User.ID)
	assert.Equal(t, 1, res.Target.User.FollowersCount())
	require.Len(t, res.Target.Followers, 1)
	assert.Equal(t, "alice", res.Target.Followers[0].Username)

	_, aliceFollowing := edges(t, f, alice.ID)
	bobFollowers, _ := edges(t, f, bob.ID)
	assert.Equal(t, []string{bob.ID}, aliceFollowing)
	assert.Equal(t, []string{alice.ID}, bobFollowers)

	following, err := f.user.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	res, err = f.user.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.False(t, res.Following)
	assert.Equal(t, 0, res.Target.User.FollowersCount())

	_, aliceFollowing = edges(t, f, alice.ID)
	bobFollowers, _ = edges(t, f, bob.ID)
	assert.Empty(t, aliceFollowing)
	assert.Empty(t, bobFollowers)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, domain.ActivityFollowed, f.publisher.events[0].Type)
	assert.Equal(t, domain.ActivityUnfollowed, f.publisher.events[1].Type)
}

func TestUserService_ToggleFollow_Self(t *testing.T) {
	f := newFixture()
	alice := f.register(t, "alice")

	_, err := f.user.ToggleFollow(context.Background(), alice.ID, "alice")
	require.ErrorIs(t, err, domain.ErrSelfFollow)

	followers, following := edges(t, f, alice.ID)
	assert.Empty(t, followers)
	assert.Empty(t, following)
}

func TestUserService_ToggleFollow_TargetNotFound(t *testing.T) {
	f := newFixture()
	alice := f.register(t, "alice")

	_, err := f.user.ToggleFollow(context.Background(), alice.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_ToggleFollow_InterruptedFollowIsCompletedByNextCall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	flaky := &flakyUsers{UserRepository: f.users, failAddFollower: true}
	svc := NewUserService(flaky, f.media, f.releaser, f.publisher, zerolog.Nop())

	_, err := svc.ToggleFollow(ctx, alice.ID, "bob")
	require.ErrorIs(t, err, errBoom)

	// Actor side landed, target side did not: bob does not see alice yet.
	_, aliceFollowing := edges(t, f, alice.ID)
	bobFollowers, _ := edges(t, f, bob.ID)
	assert.Equal(t, []string{bob.ID}, aliceFollowing)
	assert.Empty(t, bobFollowers)

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	flaky.failAddFollower = false
	res, err := svc.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, res.Following)

	_, aliceFollowing = edges(t, f, alice.ID)
	bobFollowers, _ = edges(t, f, bob.ID)
	assert.Equal(t, []string{bob.ID}, aliceFollowing, "following must stay a set")
	assert.Equal(t, []string{alice.ID}, bobFollowers)
}

func TestUserService_ToggleFollow_PublishFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.publisher.err = errBoom
	alice := f.register(t, "alice")
	f.register(t, "bob")

	res, err := f.user.ToggleFollow(context.Background(), alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, res.Following)
}

func TestUserService_FollowersAndFollowing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	f.register(t, "carol")

	_, err := f.user.ToggleFollow(ctx, alice.ID, "carol")
	require.NoError(t, err)
	_, err = f.user.ToggleFollow(ctx, bob.ID, "carol")
	require.NoError(t, err)

	followers, err := f.user.Followers(ctx, "carol")
	require.NoError(t, err)
	names := []string{}
	for _, s := range followers {
		names = append(names, s.Username)
	}
	assert.Equal(t, []string{"alice", "bob"}, names)

	following, err := f.user.Following(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "carol", following[0].Username)

	_, err = f.user.Followers(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_UpdateProfile_Fields(t *testing.T) {
	f := newFixture()
	alice := f.register(t, "alice")

	name, bio := "  Alice Liddell ", " down the rabbit hole "
	view, err := f.user.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		UserID:   alice.ID,
		FullName: &name,
		Bio:      &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", view.User.FullName)
	assert.Equal(t, "down the rabbit hole", view.User.Bio)
	assert.Empty(t, f.media.saved)
}

func TestUserService_UpdateProfile_RejectsBeforeWritingMedia(t *testing.T) {
	f := newFixture()
	alice := f.register(t, "alice")

	bio := strings.Repeat("b", domain.MaxBioLen+1)
	_, err := f.user.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		UserID:  alice.ID,
		Bio:     &bio,
		Picture: &ports.MediaUpload{Reader: strings.NewReader("img"), Size: 3},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.media.saved)

	empty := "   "
	_, err = f.user.UpdateProfile(context.Background(), ports.UpdateProfileInput{UserID: alice.ID, FullName: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_UpdateProfile_ReplacingPictureReleasesPrevious(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice")

	first, err := f.user.UpdateProfile(ctx, ports.UpdateProfileInput{
		UserID:  alice.ID,
		Picture: &ports.MediaUpload{Reader: strings.NewReader("one"), Size: 3},
	})
	require.NoError(t, err)
	oldRef := first.User.ProfilePicture
	require.NotEmpty(t, oldRef)
	assert.Empty(t, f.releaser.released, "nothing to release on first upload")

	second, err := f.user.UpdateProfile(ctx, ports.UpdateProfileInput{
		UserID:  alice.ID,
		Picture: &ports.MediaUpload{Reader: strings.NewReader("two"), Size: 3},
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldRef, second.User.ProfilePicture)
	assert.Equal(t, []string{oldRef}, f.releaser.released)
}

func TestUserService_UpdateProfile_FailedUpdateReleasesNewPicture(t *testing.T) {
	f := newFixture()
	alice := f.register(t, "alice")

	flaky := &flakyUsers{UserRepository: f.users, failUpdate: true}
	svc := NewUserService(flaky, f.media, f.releaser, f.publisher, zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		UserID:  alice.ID,
		Picture: &ports.MediaUpload{Reader: strings.NewReader("img"), Size: 3},
	})
	require.ErrorIs(t, err, errBoom)
	require.Len(t, f.media.saved, 1)
	assert.Equal(t, f.media.saved, f.releaser.released)
}

func TestUserService_UpdateProfile_PictureTooLarge(t *testing.T) {
	f := newFixture()
	alice := f.register(t, "alice")

	_, err := f.user.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		UserID:  alice.ID,
		Picture: &ports.MediaUpload{Reader: strings.NewReader("x"), Size: domain.MediaProfile.MaxBytes() + 1},
	})
	assert.ErrorIs(t, err, domain.ErrMediaTooLarge)
	assert.Empty(t, f.media.saved)
}

func TestUserService_GetByUsername_PopulatesEdges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice")
	f.register(t, "bob")
	_, err := f.user.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)

	view, err := f.user.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, view.User.FollowingCount())
	require.Len(t, view.Following, 1)
	assert.Equal(t, "bob", view.Following[0].Username)

	_, err = f.user.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = NewUserService(memory.NewUserRepository(), f.media, f.releaser, f.publisher, zerolog.Nop()).GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
