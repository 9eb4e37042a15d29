package domain

// MediaKind groups uploads by what they are attached to. Its value is also the
// storage sub-directory.
type MediaKind string

const (
	MediaPost    MediaKind = "posts"
	MediaProfile MediaKind = "profiles"
)

const (
	maxPostImageBytes      = 5 << 20
	maxProfilePictureBytes = 2 << 20
)

// MaxBytes is the largest upload accepted for the kind.
func (k MediaKind) MaxBytes() int64 {
	if k == MediaProfile {
		return maxProfilePictureBytes
	}
	return maxPostImageBytes
}

// FilePrefix is prepended to generated file names.
func (k MediaKind) FilePrefix() string {
	if k == MediaProfile {
		return "profile"
	}
	return "post"
}
