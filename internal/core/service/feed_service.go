package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
	"github.com/Sirpyerre/social-network/internal/metrics"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
	maxSearchResults = 10
)

// FeedService assembles feeds, per-user timelines and user search.
type FeedService struct {
	posts ports.PostRepository
	users ports.UserRepository
	cache ports.SearchCache // optional
	log   zerolog.Logger
}

func NewFeedService(posts ports.PostRepository, users ports.UserRepository, cache ports.SearchCache, log zerolog.Logger) *FeedService {
	return &FeedService{posts: posts, users: users, cache: cache, log: log}
}

// GetFeed returns one page of posts written by the user or anyone they
// follow, newest first. Pagination is plain offset/limit: pages can shift
// when posts arrive between requests.
func (s *FeedService) GetFeed(ctx context.Context, in ports.FeedInput) (*ports.FeedResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	authors := feedAuthors(user)
	posts, total, err := s.posts.FindByAuthors(ctx, authors, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}

	views, err := joinAuthors(ctx, s.users, posts)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.FeedResult{
		Posts: views,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}, nil
}

// feedAuthors is {user} ∪ following(user).
func feedAuthors(u *domain.User) []string {
	seen := map[string]struct{}{u.ID: {}}
	authors := []string{u.ID}
	for _, id := range u.Following {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		authors = append(authors, id)
	}
	return authors
}

// GetUserPosts returns every post by username, newest first.
func (s *FeedService) GetUserPosts(ctx context.Context, username string) ([]ports.PostView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, _, err := s.posts.FindByAuthors(ctx, []string{user.ID}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("get user posts: %w", err)
	}
	return joinAuthors(ctx, s.users, posts)
}

// SearchUsers matches query against usernames and full names. A blank query
// yields an empty result.
func (s *FeedService) SearchUsers(ctx context.Context, query string) ([]domain.UserSummary, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.UserSummary{}, nil
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, q)
		switch {
		case err != nil:
			metrics.SearchCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("search cache read failed, querying store")
		case ok:
			metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	users, err := s.users.FindByUsernameSubstring(ctx, q, maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	out := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, q, out); err != nil {
			s.log.Warn().Err(err).Msg("search cache write failed")
		}
	}
	return out, nil
}
