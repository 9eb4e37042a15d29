package ports

import (
	"context"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// RegisterInput carries a new account as submitted by the client.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
