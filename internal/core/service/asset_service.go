package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cryptotrack/portfolio-api/internal/api/metrics"
	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

// AssetService implements the owner-scoped watchlist use cases.
type AssetService struct {
	assets ports.AssetRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAssetService(assets ports.AssetRepository, users ports.UserRepository, logger zerolog.Logger) *AssetService {
	return &AssetService{assets: assets, users: users, logger: logger}
}

// Create persists a new asset owned by the caller. The ticker is stored as
// given; only updates normalise it to uppercase.
func (s *AssetService) Create(ctx context.Context, identity ports.Identity, input ports.CreateAssetInput) (*domain.Asset, error) {
	if input.Ticker == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.TargetPrice < 0 || input.Quantity < 0 || input.BuyPrice < 0 {
		return nil, domain.ErrInvalidInput
	}

	asset := &domain.Asset{
		Ticker:      input.Ticker,
		Name:        input.Name,
		TargetPrice: input.TargetPrice,
		Quantity:    input.Quantity,
		BuyPrice:    input.BuyPrice,
		Owner:       identity.Subject,
	}

	created, err := s.assets.Create(ctx, asset)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", identity.Subject).Msg("failed to create asset")
		return nil, err
	}

	metrics.AssetWritesTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("asset_id", created.ID).Str("owner", identity.Subject).Str("ticker", created.Ticker).Msg("asset created")
	return created, nil
}

// List returns assets scoped by role: admins see every asset with the owner
// expanded, regular users see only their own with the owner left as an id.
func (s *AssetService) List(ctx context.Context, identity ports.Identity) (*ports.AssetList, error) {
	if identity.Role != domain.RoleAdmin {
		owned, err := s.assets.ListByOwner(ctx, identity.Subject)
		if err != nil {
			return nil, err
		}
		return &ports.AssetList{Owned: owned}, nil
	}

	all, err := s.assets.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(all))
	seen := make(map[string]struct{}, len(all))
	for _, a := range all {
		if _, ok := seen[a.Owner]; ok {
			continue
		}
		seen[a.Owner] = struct{}{}
		ownerIDs = append(ownerIDs, a.Owner)
	}

	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	expanded := make([]*domain.AdminAsset, 0, len(all))
	for _, a := range all {
		owner := domain.AssetOwner{ID: a.Owner, Username: "Deleted User", Email: "N/A"}
		if u, ok := owners[a.Owner]; ok {
			owner.Username = u.Username
			owner.Email = u.Email
		}
		expanded = append(expanded, &domain.AdminAsset{Asset: *a, Owner: owner})
	}

	return &ports.AssetList{All: expanded}, nil
}

// Update replaces all five mutable fields. Only the owner may update; there
// is no admin override. Existence and ownership are checked before the body
// is validated, so an unknown asset is a 404 and a foreign one a 403 even
// when the payload is bad. The ticker is normalised to uppercase here, and
// the numeric fields must be strictly positive (stricter than create).
func (s *AssetService) Update(ctx context.Context, identity ports.Identity, assetID string, input ports.UpdateAssetInput) (*domain.Asset, error) {
	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Owner != identity.Subject {
		return nil, domain.ErrForbidden
	}

	if input.Ticker == "" || input.Name == "" || input.TargetPrice == nil || input.Quantity == nil || input.BuyPrice == nil {
		return nil, domain.InvalidInput("All fields are required")
	}
	if *input.TargetPrice <= 0 || *input.Quantity <= 0 || *input.BuyPrice <= 0 {
		return nil, domain.InvalidInput("Prices and quantity must be positive")
	}

	updated, err := s.assets.Update(ctx, assetID, ports.AssetUpdate{
		Ticker:      strings.ToUpper(input.Ticker),
		Name:        input.Name,
		TargetPrice: *input.TargetPrice,
		Quantity:    *input.Quantity,
		BuyPrice:    *input.BuyPrice,
	})
	if err != nil {
		return nil, err
	}

	metrics.AssetWritesTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("asset_id", assetID).Str("owner", identity.Subject).Msg("asset updated")
	return updated, nil
}

// Delete removes the asset. Same ownership rule as Update: owner only, no
// admin override.
func (s *AssetService) Delete(ctx context.Context, identity ports.Identity, assetID string) error {
	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.Owner != identity.Subject {
		return domain.ErrForbidden
	}

	if err := s.assets.Delete(ctx, assetID); err != nil {
		return err
	}

	metrics.AssetWritesTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("asset_id", assetID).Str("owner", identity.Subject).Msg("asset deleted")
	return nil
}
