package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MinUsernameLen    = 3
	MinPasswordLen    = 6
	MaxBioLen         = 160
	MaxPostContentLen = 500
	MaxCommentLen     = 300
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	validate        = validator.New()
)

// ValidUsername reports whether s is at least MinUsernameLen characters of
// letters, digits and underscores.
func ValidUsername(s string) bool {
	return utf8.RuneCountInString(s) >= MinUsernameLen && usernamePattern.MatchString(s)
}

// ValidEmail reports whether s is a syntactically valid email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// NormalizeEmail trims and lower-cases an email so lookups and uniqueness
// checks are case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateRegistration checks already-normalized registration input and
// reports every offending field at once.
func ValidateRegistration(username, email, password, fullName string) error {
	var errs ValidationErrors
	if !ValidUsername(username) {
		errs = append(errs, FieldError{
			Field:   "username",
			Message: fmt.Sprintf("Username must be at least %d characters of letters, numbers or underscores", MinUsernameLen),
		})
	}
	if !ValidEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLen),
		})
	}
	if fullName == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "Full name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizePostContent trims raw post text and enforces 1..MaxPostContentLen characters.
func NormalizePostContent(raw string) (string, error) {
	return boundedText(raw, "content", MaxPostContentLen)
}

// NormalizeCommentText trims raw comment text and enforces 1..MaxCommentLen characters.
func NormalizeCommentText(raw string) (string, error) {
	return boundedText(raw, "text", MaxCommentLen)
}

// NormalizeBio trims a bio; an empty bio clears it.
func NormalizeBio(raw string) (string, error) {
	bio := strings.TrimSpace(raw)
	if utf8.RuneCountInString(bio) > MaxBioLen {
		return "", InvalidField("bio", fmt.Sprintf("Bio cannot exceed %d characters", MaxBioLen))
	}
	return bio, nil
}

func boundedText(raw, field string, max int) (string, error) {
	text := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(text)
	if n == 0 || n > max {
		return "", fmt.Errorf("%w: %w", ErrInvalidContent,
			InvalidField(field, fmt.Sprintf("%s must be between 1 and %d characters", capitalize(field), max)))
	}
	return text, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
