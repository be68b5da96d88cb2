package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

// AdminService implements the admin-only user administration use cases.
type AdminService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// UpdateRole sets a user's role. An admin may not demote their own account;
// assigning themselves the admin role again is a permitted no-op.
func (s *AdminService) UpdateRole(ctx context.Context, actorID, userID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ID == actorID && role == domain.RoleUser {
		return nil, domain.ErrSelfDemote
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("actor", actorID).Str("user_id", userID).Str("role", role).Msg("user role updated")
	return updated, nil
}

// DeleteUser removes a user record. Their assets are left in place with a
// dangling owner reference; the admin asset listing renders those owners as
// "Deleted User".
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.ID == actorID {
		return domain.ErrSelfDelete
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("actor", actorID).Str("user_id", userID).Msg("user deleted")
	return nil
}
