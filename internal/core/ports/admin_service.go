package ports

import (
	"context"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
)

// AdminService defines the admin-only user administration use cases.
// Role checks happen at the transport edge (RBAC middleware); the actor id
// is still required here to enforce the self-protection rules.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// UpdateRole changes a user's role. An admin demoting their own account
	// fails with domain.ErrSelfDemote; self-promotion to the same role is a
	// permitted no-op.
	UpdateRole(ctx context.Context, actorID, userID, role string) (*domain.User, error)
	// DeleteUser removes a user. Deleting one's own account fails with
	// domain.ErrSelfDelete. The user's assets are not cascade-deleted.
	DeleteUser(ctx context.Context, actorID, userID string) error
}
