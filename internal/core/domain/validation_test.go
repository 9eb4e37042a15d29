package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUsername(t *testing.T) {
	cases := map[string]bool{
		"alice":     true,
		"bob_99":    true,
		"ab":        false,
		"has space": false,
		"dash-name": false,
		"":          false,
	}
	for in, want := range cases {
		assert.Equalf(t, want, ValidUsername(in), "username %q", in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}

func TestValidateRegistration_ReportsEveryField(t *testing.T) {
	err := ValidateRegistration("a!", "not-an-email", "123", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"username", "email", "password", "fullName"}, fields)
}

func TestValidateRegistration_OK(t *testing.T) {
	assert.NoError(t, ValidateRegistration("alice", "a@x.com", "secret1", "Alice A"))
}

func TestNormalizePostContent(t *testing.T) {
	got, err := NormalizePostContent("  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = NormalizePostContent("   ")
	assert.ErrorIs(t, err, ErrInvalidContent)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NormalizePostContent(strings.Repeat("x", MaxPostContentLen+1))
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = NormalizePostContent(strings.Repeat("é", MaxPostContentLen))
	assert.NoError(t, err, "limit counts characters, not bytes")
}

func TestNormalizeCommentText(t *testing.T) {
	_, err := NormalizeCommentText(strings.Repeat("y", MaxCommentLen+1))
	require.ErrorIs(t, err, ErrInvalidContent)

	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "text", ve[0].Field)
}

func TestNormalizeBio(t *testing.T) {
	bio, err := NormalizeBio("  ")
	require.NoError(t, err)
	assert.Empty(t, bio)

	_, err = NormalizeBio(strings.Repeat("b", MaxBioLen+1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIdentityConflicts(t *testing.T) {
	assert.ErrorIs(t, ErrEmailTaken, ErrDuplicateIdentity)
	assert.ErrorIs(t, ErrUsernameTaken, ErrDuplicateIdentity)
	assert.Equal(t, "Email already registered", ErrEmailTaken.Error())
}

func TestUserDerivedCounts(t *testing.T) {
	u := &User{ID: "a", Followers: []string{"b", "c"}, Following: []string{"b"}}
	assert.Equal(t, 2, u.FollowersCount())
	assert.Equal(t, 1, u.FollowingCount())
	assert.True(t, u.Follows("b"))
	assert.True(t, u.FollowedBy("c"))
	assert.False(t, u.Follows("c"))
}

func TestMediaKindLimits(t *testing.T) {
	assert.EqualValues(t, 5<<20, MediaPost.MaxBytes())
	assert.EqualValues(t, 2<<20, MediaProfile.MaxBytes())
	assert.Equal(t, "profile", MediaProfile.FilePrefix())
}
