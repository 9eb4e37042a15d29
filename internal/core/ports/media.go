package ports

import (
	"context"
	"io"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// MediaStore writes and removes uploaded images. References returned by Save
// are public paths stored on posts and profiles.
type MediaStore interface {
	Save(ctx context.Context, kind domain.MediaKind, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// MediaReleaser schedules best-effort removal of a media reference. It never
// blocks and never reports failure to the caller.
type MediaReleaser interface {
	Release(ref string)
}

// MediaUpload is an image received from a client.
type MediaUpload struct {
	Reader io.Reader
	Size   int64
}
