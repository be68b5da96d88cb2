package ports

import (
	"context"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
)

// AuthService defines the registration and login use cases.
type AuthService interface {
	// Register creates a user with role forced to domain.RoleUser.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token plus the
	// public user record. Unknown email and wrong password are
	// indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
