package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "<message>"},
//     plus "errors" with per-field detail for validation failures.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, auth, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Field-level validation detail.
	var ve domain.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]fieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		msg := "Validation failed"
		if len(fields) == 1 {
			msg = fields[0].Message
		}
		return http.StatusBadRequest, errorResponse{Message: msg, Errors: fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusBadRequest, errorResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrSelfFollow):
		return http.StatusBadRequest, errorResponse{Message: "You cannot follow yourself"}
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return http.StatusBadRequest, errorResponse{Message: "Only image files are allowed (jpeg, png, gif, webp)"}
	case errors.Is(err, domain.ErrMediaTooLarge):
		return http.StatusBadRequest, errorResponse{Message: "File too large"}
	case errors.Is(err, domain.ErrInvalidContent), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Message: "Invalid input"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: "Invalid credentials"}
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden, errorResponse{Message: "Not authorized"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Message: "User not found"}
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, errorResponse{Message: "Post not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "Server error"}
}
