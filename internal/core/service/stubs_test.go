package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
	"github.com/Sirpyerre/social-network/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

var errBoom = errors.New("boom")

type fakeMedia struct {
	saved   []string
	saveErr error
	n       int
}

func (m *fakeMedia) Save(_ context.Context, kind domain.MediaKind, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	_, _ = io.Copy(io.Discard, r)
	m.n++
	ref := fmt.Sprintf("/uploads/%s/%s-%d.png", kind, kind.FilePrefix(), m.n)
	m.saved = append(m.saved, ref)
	return ref, nil
}

func (m *fakeMedia) Delete(context.Context, string) error { return nil }

type recordingReleaser struct {
	released []string
}

func (r *recordingReleaser) Release(ref string) { r.released = append(r.released, ref) }

type recordingPublisher struct {
	events []domain.Activity
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, a domain.Activity) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, a)
	return nil
}

type stubSearchCache struct {
	entries map[string][]domain.UserSummary
	getErr  error
	sets    int
}

func newStubSearchCache() *stubSearchCache {
	return &stubSearchCache{entries: make(map[string][]domain.UserSummary)}
}

func (c *stubSearchCache) Get(_ context.Context, q string) ([]domain.UserSummary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	users, ok := c.entries[strings.ToLower(q)]
	return users, ok, nil
}

func (c *stubSearchCache) Set(_ context.Context, q string, users []domain.UserSummary) error {
	c.sets++
	c.entries[strings.ToLower(q)] = users
	return nil
}

// flakyUsers fails selected edge writes to simulate a crash between the two
// halves of a follow.
type flakyUsers struct {
	*memory.UserRepository
	failAddFollower bool
	failUpdate      bool
}

func (f *flakyUsers) AddFollower(ctx context.Context, targetID, followerID string) error {
	if f.failAddFollower {
		return errBoom
	}
	return f.UserRepository.AddFollower(ctx, targetID, followerID)
}

func (f *flakyUsers) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	if f.failUpdate {
		return nil, errBoom
	}
	return f.UserRepository.UpdateProfile(ctx, id, upd)
}

type failingPosts struct {
	*memory.PostRepository
}

func (failingPosts) Create(context.Context, *domain.Post) error { return errBoom }

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	users     *memory.UserRepository
	posts     *memory.PostRepository
	media     *fakeMedia
	releaser  *recordingReleaser
	publisher *recordingPublisher
	cache     *stubSearchCache

	auth  *AuthService
	user  *UserService
	post  *PostService
	feeds *FeedService
}

func newFixture() *fixture {
	f := &fixture{
		users:     memory.NewUserRepository(),
		posts:     memory.NewPostRepository(),
		media:     &fakeMedia{},
		releaser:  &recordingReleaser{},
		publisher: &recordingPublisher{},
		cache:     newStubSearchCache(),
	}
	log := zerolog.Nop()
	f.auth = NewAuthService(f.users, "test-secret", 0, log)
	f.user = NewUserService(f.users, f.media, f.releaser, f.publisher, log)
	f.post = NewPostService(f.posts, f.users, f.media, f.releaser, f.publisher, log)
	f.feeds = NewFeedService(f.posts, f.users, f.cache, log)
	return f
}

func (f *fixture) register(t *testing.T, username string) *domain.User {
	t.Helper()
	res, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
		FullName: strings.ToUpper(username[:1]) + username[1:] + " Tester",
	})
	require.NoError(t, err)
	return res.User
}

func (f *fixture) createPost(t *testing.T, authorID, content string) *ports.PostView {
	t.Helper()
	view, err := f.post.CreatePost(context.Background(), ports.CreatePostInput{AuthorID: authorID, Content: content})
	require.NoError(t, err)
	return view
}
