package service

import (
	"context"
	"fmt"

	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
)

// summaries loads the users referenced by ids in one query and returns their
// summaries in the order of ids. References to users that no longer resolve
// are dropped.
func summaries(ctx context.Context, users ports.UserRepository, ids []string) ([]domain.UserSummary, error) {
	if len(ids) == 0 {
		return []domain.UserSummary{}, nil
	}

	byID, err := loadUsers(ctx, users, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}

func loadUsers(ctx context.Context, users ports.UserRepository, ids []string) (map[string]*domain.User, error) {
	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	byID := make(map[string]*domain.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	return byID, nil
}

// profileView populates both edge lists of u.
func profileView(ctx context.Context, users ports.UserRepository, u *domain.User) (*ports.ProfileView, error) {
	ids := make([]string, 0, len(u.Followers)+len(u.Following))
	ids = append(ids, u.Followers...)
	ids = append(ids, u.Following...)

	byID := map[string]*domain.User{}
	if len(ids) > 0 {
		var err error
		if byID, err = loadUsers(ctx, users, ids); err != nil {
			return nil, err
		}
	}

	pick := func(ids []string) []domain.UserSummary {
		out := make([]domain.UserSummary, 0, len(ids))
		for _, id := range ids {
			if f, ok := byID[id]; ok {
				out = append(out, f.Summary())
			}
		}
		return out
	}

	return &ports.ProfileView{
		User:      u,
		Followers: pick(u.Followers),
		Following: pick(u.Following),
	}, nil
}

// joinAuthors populates the author and every commenter of posts with a single
// user lookup. A reference that no longer resolves keeps only its id.
func joinAuthors(ctx context.Context, users ports.UserRepository, posts []*domain.Post) ([]ports.PostView, error) {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		add(p.AuthorID)
		for _, c := range p.Comments {
			add(c.UserID)
		}
	}

	byID := map[string]*domain.User{}
	if len(ids) > 0 {
		var err error
		if byID, err = loadUsers(ctx, users, ids); err != nil {
			return nil, err
		}
	}

	summaryOf := func(id string) domain.UserSummary {
		if u, ok := byID[id]; ok {
			s := u.Summary()
			s.Bio = ""
			return s
		}
		return domain.UserSummary{ID: id}
	}

	views := make([]ports.PostView, 0, len(posts))
	for _, p := range posts {
		comments := make([]ports.CommentView, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, ports.CommentView{
				ID:        c.ID,
				User:      summaryOf(c.UserID),
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			})
		}
		likes := p.Likes
		if likes == nil {
			likes = []string{}
		}
		views = append(views, ports.PostView{
			ID:        p.ID,
			Author:    summaryOf(p.AuthorID),
			Content:   p.Content,
			Image:     p.Image,
			Likes:     likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return views, nil
}

func joinAuthor(ctx context.Context, users ports.UserRepository, post *domain.Post) (*ports.PostView, error) {
	views, err := joinAuthors(ctx, users, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
