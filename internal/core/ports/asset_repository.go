package ports

import (
	"context"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
)

// AssetUpdate carries the full replacement field set for an asset update.
// Asset updates are whole-record writes, last-write-wins at the store.
type AssetUpdate struct {
	Ticker      string
	Name        string
	TargetPrice float64
	Quantity    float64
	BuyPrice    float64
}

// AssetRepository defines persistence operations for watchlist assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) (*domain.Asset, error)
	FindByID(ctx context.Context, id string) (*domain.Asset, error)
	// ListByOwner returns the owner's assets, newest first.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Asset, error)
	// ListAll returns every asset across all owners, newest first.
	ListAll(ctx context.Context) ([]*domain.Asset, error)
	Update(ctx context.Context, id string, update AssetUpdate) (*domain.Asset, error)
	Delete(ctx context.Context, id string) error
}
