package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

type storedPost struct {
	post *domain.Post
	seq  uint64 // insertion order, breaks created_at ties
}

type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*storedPost
	seq   uint64
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*storedPost)}
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	c.Comments = slices.Clone(p.Comments)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	if c.Comments == nil {
		c.Comments = []domain.Comment{}
	}
	return &c
}

func (r *PostRepository) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = uuid.NewString()
	r.seq++
	r.posts[post.ID] = &storedPost{post: clonePost(post), seq: r.seq}
	return nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sp, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(sp.post), nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) AddLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sp, ok := r.posts[postID]
	if !ok {
		return false, domain.ErrPostNotFound
	}
	if sp.post.LikedBy(userID) {
		return false, nil
	}
	sp.post.Likes = append(sp.post.Likes, userID)
	sp.post.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *PostRepository) RemoveLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sp, ok := r.posts[postID]
	if !ok {
		return false, domain.ErrPostNotFound
	}
	if !sp.post.LikedBy(userID) {
		return false, nil
	}
	sp.post.Likes = pull(sp.post.Likes, userID)
	sp.post.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *PostRepository) PrependComment(_ context.Context, postID string, comment domain.Comment) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sp, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	sp.post.Comments = append([]domain.Comment{comment}, sp.post.Comments...)
	sp.post.UpdatedAt = time.Now().UTC()
	return clonePost(sp.post), nil
}

func (r *PostRepository) FindByAuthors(_ context.Context, authorIDs []string, skip, limit int) ([]*domain.Post, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*storedPost
	for _, sp := range r.posts {
		if slices.Contains(authorIDs, sp.post.AuthorID) {
			matched = append(matched, sp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.post.CreatedAt.After(b.post.CreatedAt)
		}
		return a.seq > b.seq
	})

	total := int64(len(matched))
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Post{}, total, nil
	}
	end := len(matched)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}

	out := make([]*domain.Post, 0, end-skip)
	for _, sp := range matched[skip:end] {
		out = append(out, clonePost(sp.post))
	}
	return out, total, nil
}
