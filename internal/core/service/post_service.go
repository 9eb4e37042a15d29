package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
	"github.com/Sirpyerre/social-network/internal/metrics"
)

// PostService implements posts, likes and comments.
type PostService struct {
	posts    ports.PostRepository
	users    ports.UserRepository
	media    ports.MediaStore
	releaser ports.MediaReleaser
	activity ports.ActivityPublisher
	log      zerolog.Logger
}

func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	media ports.MediaStore,
	releaser ports.MediaReleaser,
	activity ports.ActivityPublisher,
	log zerolog.Logger,
) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		media:    media,
		releaser: releaser,
		activity: activity,
		log:      log,
	}
}

// CreatePost stores a new post. Content is validated before the optional
// image is written; if the post cannot be stored the image is released.
func (s *PostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*ports.PostView, error) {
	content, err := domain.NormalizePostContent(in.Content)
	if err != nil {
		return nil, err
	}

	var imageRef string
	if in.Image != nil {
		if in.Image.Size > domain.MediaPost.MaxBytes() {
			return nil, domain.ErrMediaTooLarge
		}
		imageRef, err = s.media.Save(ctx, domain.MediaPost, in.Image.Reader)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
	}

	now := time.Now().UTC()
	post := &domain.Post{
		AuthorID:  in.AuthorID,
		Content:   content,
		Image:     imageRef,
		Likes:     []string{},
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if imageRef != "" {
			s.releaser.Release(imageRef)
		}
		s.log.Error().Err(err).Str("author_id", in.AuthorID).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.Info().Str("post_id", post.ID).Str("author_id", in.AuthorID).Bool("has_image", imageRef != "").Msg("post created")
	publishActivity(ctx, s.activity, s.log, domain.Activity{Type: domain.ActivityPostCreated, ActorID: in.AuthorID, PostID: post.ID})

	return joinAuthor(ctx, s.users, post)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return joinAuthor(ctx, s.users, post)
}

// ToggleLike flips userID's membership in the post's like set exactly once.
//
// The add is attempted first and only succeeds when the user is absent; if it
// changed nothing the user was present and is removed instead. Each step is a
// single atomic set operation, so concurrent toggles resolve as last write
// wins without corrupting the set.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*ports.LikeResult, error) {
	added, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	liked := added
	if !added {
		if _, err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	view, err := joinAuthor(ctx, s.users, post)
	if err != nil {
		return nil, err
	}

	activity, direction := domain.ActivityPostUnliked, "unlike"
	if liked {
		activity, direction = domain.ActivityPostLiked, "like"
	}
	metrics.LikesToggledTotal.WithLabelValues(direction).Inc()
	publishActivity(ctx, s.activity, s.log, domain.Activity{
		Type:         activity,
		ActorID:      userID,
		TargetUserID: post.AuthorID,
		PostID:       postID,
	})

	return &ports.LikeResult{Post: view, Liked: liked}, nil
}

// AddComment prepends a comment so the sequence stays most-recent-first.
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) (*ports.PostView, error) {
	body, err := domain.NormalizeCommentText(text)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.PrependComment(ctx, postID, domain.Comment{
		UserID:    userID,
		Text:      body,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.CommentsAddedTotal.Inc()
	publishActivity(ctx, s.activity, s.log, domain.Activity{
		Type:         domain.ActivityCommentAdded,
		ActorID:      userID,
		TargetUserID: post.AuthorID,
		PostID:       postID,
	})

	return joinAuthor(ctx, s.users, post)
}

// DeletePost removes a post owned by requesterID. The attached image is
// released afterwards on a best-effort basis; that never fails the delete.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(requesterID) {
		return domain.ErrNotAuthorized
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if post.Image != "" {
		s.releaser.Release(post.Image)
	}

	metrics.PostsDeletedTotal.Inc()
	s.log.Info().Str("post_id", postID).Str("author_id", requesterID).Msg("post deleted")
	return nil
}
