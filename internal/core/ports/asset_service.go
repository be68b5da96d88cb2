package ports

import (
	"context"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
)

// Identity is the authenticated caller derived from a verified token.
type Identity struct {
	Subject string // user id
	Role    string
}

// CreateAssetInput carries the fields for a new watchlist position.
// Handler-level validation guarantees the numeric fields are present and
// non-negative; zero values are accepted on create.
type CreateAssetInput struct {
	Ticker      string
	Name        string
	TargetPrice float64
	Quantity    float64
	BuyPrice    float64
}

// UpdateAssetInput carries the full replacement field set for an update.
// The numeric fields are pointers so the service can tell an absent field
// from an explicit zero; it validates them only after the asset has been
// found and ownership established, so an unknown or foreign asset answers
// 404/403 before any 400. The ticker is normalised to uppercase before
// persisting.
type UpdateAssetInput struct {
	Ticker      string
	Name        string
	TargetPrice *float64
	Quantity    *float64
	BuyPrice    *float64
}

// AssetList is the role-scoped result of listing assets. Exactly one of the
// two slices is populated: Owned for regular users, All for admins.
type AssetList struct {
	Owned []*domain.Asset
	All   []*domain.AdminAsset
}

// AssetService defines the owner-scoped asset use cases.
type AssetService interface {
	Create(ctx context.Context, identity Identity, input CreateAssetInput) (*domain.Asset, error)
	List(ctx context.Context, identity Identity) (*AssetList, error)
	Update(ctx context.Context, identity Identity, assetID string, input UpdateAssetInput) (*domain.Asset, error)
	Delete(ctx context.Context, identity Identity, assetID string) error
}
