package domain

import (
	"slices"
	"time"
)

// Comment is embedded in a Post and shares its lifecycle. Comments are never edited.
type Comment struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
}

// Post is owned by AuthorID for its whole life. Likes is a set of user ids
// and Comments is ordered most-recent-first.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	Image     string // optional media reference
	Likes     []string
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID string) bool { return slices.Contains(p.Likes, userID) }

// OwnedBy reports whether userID authored the post.
func (p *Post) OwnedBy(userID string) bool { return p.AuthorID == userID }
