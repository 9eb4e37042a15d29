package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidContent     = errors.New("invalid content")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrSelfFollow         = errors.New("you cannot follow yourself")
	ErrUnsupportedMedia   = errors.New("only image files are allowed")
	ErrMediaTooLarge      = errors.New("file too large")
)

// identityConflict is a registration conflict that still matches
// ErrDuplicateIdentity, but carries the message shown to the client.
type identityConflict struct {
	msg string
}

func (e *identityConflict) Error() string { return e.msg }

func (e *identityConflict) Is(target error) bool { return target == ErrDuplicateIdentity }

var (
	ErrEmailTaken    error = &identityConflict{msg: "Email already registered"}
	ErrUsernameTaken error = &identityConflict{msg: "Username already taken"}
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors is returned for malformed or out-of-range input. It matches
// ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool { return target == ErrValidation }

// InvalidField builds a single-field ValidationErrors.
func InvalidField(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}
