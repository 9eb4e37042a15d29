package domain

import "time"

// ActivityType names a social action published after it has been persisted.
type ActivityType string

const (
	ActivityPostCreated  ActivityType = "post_created"
	ActivityPostLiked    ActivityType = "post_liked"
	ActivityPostUnliked  ActivityType = "post_unliked"
	ActivityCommentAdded ActivityType = "comment_added"
	ActivityFollowed     ActivityType = "user_followed"
	ActivityUnfollowed   ActivityType = "user_unfollowed"
)

// Activity is a notification-style record of something a user did.
type Activity struct {
	Type         ActivityType
	ActorID      string
	TargetUserID string // optional
	PostID       string // optional
	At           time.Time
}
