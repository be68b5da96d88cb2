package ports

import (
	"context"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with its generated id.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids, keyed by id. Missing ids are
	// simply absent from the map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
