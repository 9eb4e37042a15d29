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

// UserService implements profiles and the follow graph.
type UserService struct {
	users    ports.UserRepository
	media    ports.MediaStore
	releaser ports.MediaReleaser
	activity ports.ActivityPublisher
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	media ports.MediaStore,
	releaser ports.MediaReleaser,
	activity ports.ActivityPublisher,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		media:    media,
		releaser: releaser,
		activity: activity,
		log:      log,
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*ports.ProfileView, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return profileView(ctx, s.users, u)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*ports.ProfileView, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return profileView(ctx, s.users, u)
}

// UpdateProfile applies a profile edit. Input is validated before any upload
// is written. When a new picture replaces an old one the old file is
// scheduled for release; if the update itself fails the new file is released
// instead.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*ports.ProfileView, error) {
	var upd domain.ProfileUpdate

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, domain.InvalidField("fullName", "Full name cannot be empty")
		}
		upd.FullName = &name
	}
	if in.Bio != nil {
		bio, err := domain.NormalizeBio(*in.Bio)
		if err != nil {
			return nil, err
		}
		upd.Bio = &bio
	}

	current, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	var newRef string
	if in.Picture != nil {
		if in.Picture.Size > domain.MediaProfile.MaxBytes() {
			return nil, domain.ErrMediaTooLarge
		}
		newRef, err = s.media.Save(ctx, domain.MediaProfile, in.Picture.Reader)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		upd.ProfilePicture = &newRef
	}

	if upd.Empty() {
		return profileView(ctx, s.users, current)
	}

	updated, err := s.users.UpdateProfile(ctx, in.UserID, upd)
	if err != nil {
		if newRef != "" {
			s.releaser.Release(newRef)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if newRef != "" && current.ProfilePicture != "" && current.ProfilePicture != newRef {
		s.releaser.Release(current.ProfilePicture)
	}

	return profileView(ctx, s.users, updated)
}

// ToggleFollow follows targetUsername, or unfollows when actorID already
// follows it.
func (s *UserService) ToggleFollow(ctx context.Context, actorID, targetUsername string) (*ports.FollowResult, error) {
	target, err := s.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	following, err := s.follow(ctx, actorID, target.ID)
	if err != nil {
		return nil, err
	}

	refreshed, err := s.users.FindByID(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	view, err := profileView(ctx, s.users, refreshed)
	if err != nil {
		return nil, err
	}

	activity := domain.ActivityUnfollowed
	direction := "unfollow"
	if following {
		activity = domain.ActivityFollowed
		direction = "follow"
	}
	metrics.FollowsToggledTotal.WithLabelValues(direction).Inc()
	publishActivity(ctx, s.activity, s.log, domain.Activity{Type: activity, ActorID: actorID, TargetUserID: target.ID})

	return &ports.FollowResult{Target: view, Following: following}, nil
}

// follow flips the edge actor -> target and reports whether it now exists.
//
// The toggle direction is decided from the target's followers set. Both sides
// are written back to back with single-document set operations, the actor's
// following set first and the target's followers set last, so an interrupted
// follow reads as "not yet a follower" and the next call completes it.
func (s *UserService) follow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, domain.ErrSelfFollow
	}

	already, err := s.users.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("follow: %w", err)
	}

	if already {
		if err := s.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
			return false, fmt.Errorf("unfollow: actor side: %w", err)
		}
		if err := s.users.RemoveFollower(ctx, targetID, actorID); err != nil {
			return false, fmt.Errorf("unfollow: target side: %w", err)
		}
		return false, nil
	}

	if err := s.users.AddFollowing(ctx, actorID, targetID); err != nil {
		return false, fmt.Errorf("follow: actor side: %w", err)
	}
	if err := s.users.AddFollower(ctx, targetID, actorID); err != nil {
		return false, fmt.Errorf("follow: target side: %w", err)
	}
	return true, nil
}

func (s *UserService) IsFollowing(ctx context.Context, actorID, targetID string) (bool, error) {
	return s.users.IsFollowing(ctx, actorID, targetID)
}

func (s *UserService) Followers(ctx context.Context, username string) ([]domain.UserSummary, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return summaries(ctx, s.users, u.Followers)
}

func (s *UserService) Following(ctx context.Context, username string) ([]domain.UserSummary, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return summaries(ctx, s.users, u.Following)
}
