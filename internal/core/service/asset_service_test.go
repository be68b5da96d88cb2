package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

type stubAssetRepo struct {
	assets  map[string]*domain.Asset
	order   []string // insertion order, oldest first
	nextID  int
	deleted []string
}

func newStubAssetRepo() *stubAssetRepo {
	return &stubAssetRepo{assets: make(map[string]*domain.Asset)}
}

func cloneAsset(a *domain.Asset) *domain.Asset {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func fptr(v float64) *float64 { return &v }

func updateInput(ticker, name string, targetPrice, quantity, buyPrice float64) ports.UpdateAssetInput {
	return ports.UpdateAssetInput{
		Ticker:      ticker,
		Name:        name,
		TargetPrice: fptr(targetPrice),
		Quantity:    fptr(quantity),
		BuyPrice:    fptr(buyPrice),
	}
}

func (r *stubAssetRepo) Create(_ context.Context, asset *domain.Asset) (*domain.Asset, error) {
	copy := cloneAsset(asset)
	r.nextID++
	copy.ID = "asset_" + strconv.Itoa(r.nextID)
	copy.CreatedAt = time.Now().UTC()
	copy.UpdatedAt = copy.CreatedAt
	r.assets[copy.ID] = cloneAsset(copy)
	r.order = append(r.order, copy.ID)
	return cloneAsset(copy), nil
}

func (r *stubAssetRepo) FindByID(_ context.Context, id string) (*domain.Asset, error) {
	if a, ok := r.assets[id]; ok {
		return cloneAsset(a), nil
	}
	return nil, domain.ErrAssetNotFound
}

func (r *stubAssetRepo) ListByOwner(_ context.Context, owner string) ([]*domain.Asset, error) {
	var out []*domain.Asset
	for i := len(r.order) - 1; i >= 0; i-- {
		if a := r.assets[r.order[i]]; a != nil && a.Owner == owner {
			out = append(out, cloneAsset(a))
		}
	}
	return out, nil
}

func (r *stubAssetRepo) ListAll(_ context.Context) ([]*domain.Asset, error) {
	var out []*domain.Asset
	for i := len(r.order) - 1; i >= 0; i-- {
		if a := r.assets[r.order[i]]; a != nil {
			out = append(out, cloneAsset(a))
		}
	}
	return out, nil
}

func (r *stubAssetRepo) Update(_ context.Context, id string, update ports.AssetUpdate) (*domain.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	a.Ticker = update.Ticker
	a.Name = update.Name
	a.TargetPrice = update.TargetPrice
	a.Quantity = update.Quantity
	a.BuyPrice = update.BuyPrice
	a.UpdatedAt = time.Now().UTC()
	return cloneAsset(a), nil
}

func (r *stubAssetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.assets[id]; !ok {
		return domain.ErrAssetNotFound
	}
	delete(r.assets, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func newTestAssetService(assets *stubAssetRepo, users *stubUserRepo) *AssetService {
	return NewAssetService(assets, users, zerolog.Nop())
}

func userIdentity(id string) ports.Identity {
	return ports.Identity{Subject: id, Role: domain.RoleUser}
}

func adminIdentity(id string) ports.Identity {
	return ports.Identity{Subject: id, Role: domain.RoleAdmin}
}

func TestAssetService_Create_KeepsTickerCase(t *testing.T) {
	svc := newTestAssetService(newStubAssetRepo(), newStubUserRepo())

	asset, err := svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 50000, Quantity: 0.5, BuyPrice: 42000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if asset.Ticker != "btc" {
		t.Fatalf("create must store ticker as given, got %q", asset.Ticker)
	}
	if asset.Owner != "u1" {
		t.Fatalf("expected owner u1, got %q", asset.Owner)
	}
}

func TestAssetService_Create_AllowsZeroValues(t *testing.T) {
	svc := newTestAssetService(newStubAssetRepo(), newStubUserRepo())

	if _, err := svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{
		Ticker: "eth", Name: "Ethereum", TargetPrice: 0, Quantity: 0, BuyPrice: 0,
	}); err != nil {
		t.Fatalf("create with zero values must succeed, got %v", err)
	}
}

func TestAssetService_Create_RejectsNegativeAndMissing(t *testing.T) {
	svc := newTestAssetService(newStubAssetRepo(), newStubUserRepo())

	if _, err := svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{
		Ticker: "", Name: "Bitcoin", TargetPrice: 1, Quantity: 1, BuyPrice: 1,
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing ticker, got %v", err)
	}
	if _, err := svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: -1, Quantity: 1, BuyPrice: 1,
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestAssetService_Update_NormalizesTicker(t *testing.T) {
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, err := svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 50000, Quantity: 0.5, BuyPrice: 42000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), userIdentity("u1"), created.ID,
		updateInput("eth", "Ethereum", 4000, 2, 3000))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Ticker != "ETH" {
		t.Fatalf("update must uppercase ticker, got %q", updated.Ticker)
	}
}

func TestAssetService_Update_RequiresStrictlyPositive(t *testing.T) {
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, _ := svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 0, Quantity: 0, BuyPrice: 0,
	})

	// zero was fine on create but is rejected on update
	_, err := svc.Update(context.Background(), userIdentity("u1"), created.ID,
		updateInput("btc", "Bitcoin", 0, 1, 1))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero target price on update, got %v", err)
	}
	if err.Error() != "Prices and quantity must be positive" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestAssetService_Update_MissingFieldRejected(t *testing.T) {
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, _ := svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 1, Quantity: 1, BuyPrice: 1,
	})

	input := updateInput("btc", "Bitcoin", 1, 1, 1)
	input.BuyPrice = nil
	_, err := svc.Update(context.Background(), userIdentity("u1"), created.ID, input)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing buy price, got %v", err)
	}
	if err.Error() != "All fields are required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestAssetService_Update_NotFound(t *testing.T) {
	svc := newTestAssetService(newStubAssetRepo(), newStubUserRepo())

	if _, err := svc.Update(context.Background(), userIdentity("u1"), "missing",
		updateInput("btc", "Bitcoin", 1, 1, 1)); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetService_Update_NotFoundBeatsBadBody(t *testing.T) {
	svc := newTestAssetService(newStubAssetRepo(), newStubUserRepo())

	// the body is invalid too, but the lookup runs first
	if _, err := svc.Update(context.Background(), userIdentity("u1"), "missing",
		updateInput("", "", 0, 0, 0)); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Fatalf("unknown asset must answer not-found before validation, got %v", err)
	}
}

func TestAssetService_Update_ForbiddenBeatsBadBody(t *testing.T) {
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, _ := svc.Create(context.Background(), userIdentity("owner"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 1, Quantity: 1, BuyPrice: 1,
	})

	if _, err := svc.Update(context.Background(), userIdentity("intruder"), created.ID,
		updateInput("", "", 0, 0, 0)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign asset must answer forbidden before validation, got %v", err)
	}
}

func TestAssetService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, _ := svc.Create(context.Background(), userIdentity("owner"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 1, Quantity: 1, BuyPrice: 1,
	})

	if _, err := svc.Update(context.Background(), userIdentity("intruder"), created.ID,
		updateInput("btc", "Bitcoin", 2, 2, 2)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssetService_Delete_NonOwnerForbidden(t *testing.T) {
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, _ := svc.Create(context.Background(), userIdentity("owner"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 1, Quantity: 1, BuyPrice: 1,
	})

	if err := svc.Delete(context.Background(), userIdentity("intruder"), created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssetService_Delete_AdminIsNotOwner(t *testing.T) {
	// Admins get no override on asset mutation: ownership is the only check.
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, _ := svc.Create(context.Background(), userIdentity("owner"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 1, Quantity: 1, BuyPrice: 1,
	})

	if err := svc.Delete(context.Background(), adminIdentity("some-admin"), created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin non-owner, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("asset must not have been deleted")
	}
}

func TestAssetService_Delete_Owner(t *testing.T) {
	repo := newStubAssetRepo()
	svc := newTestAssetService(repo, newStubUserRepo())

	created, _ := svc.Create(context.Background(), userIdentity("owner"), ports.CreateAssetInput{
		Ticker: "btc", Name: "Bitcoin", TargetPrice: 1, Quantity: 1, BuyPrice: 1,
	})

	if err := svc.Delete(context.Background(), userIdentity("owner"), created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), userIdentity("owner"), created.ID); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound after delete, got %v", err)
	}
}

func TestAssetService_List_UserSeesOnlyOwn(t *testing.T) {
	assetRepo := newStubAssetRepo()
	svc := newTestAssetService(assetRepo, newStubUserRepo())

	_, _ = svc.Create(context.Background(), userIdentity("u1"), ports.CreateAssetInput{Ticker: "btc", Name: "Bitcoin"})
	_, _ = svc.Create(context.Background(), userIdentity("u2"), ports.CreateAssetInput{Ticker: "eth", Name: "Ethereum"})

	list, err := svc.List(context.Background(), userIdentity("u1"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.All != nil {
		t.Fatalf("non-admin list must not expand owners")
	}
	if len(list.Owned) != 1 || list.Owned[0].Ticker != "btc" {
		t.Fatalf("expected only u1's asset, got %+v", list.Owned)
	}
}

func TestAssetService_List_AdminSeesAllWithOwners(t *testing.T) {
	assetRepo := newStubAssetRepo()
	userRepo := newStubUserRepo()
	svc := newTestAssetService(assetRepo, userRepo)

	alice, _ := userRepo.Create(context.Background(), &domain.User{Username: "alice", Email: "a@x.com"})
	_, _ = svc.Create(context.Background(), userIdentity(alice.ID), ports.CreateAssetInput{Ticker: "btc", Name: "Bitcoin"})
	_, _ = svc.Create(context.Background(), userIdentity("gone"), ports.CreateAssetInput{Ticker: "eth", Name: "Ethereum"})

	list, err := svc.List(context.Background(), adminIdentity("admin1"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list.All) != 2 {
		t.Fatalf("admin must see all assets, got %d", len(list.All))
	}

	// newest first
	if list.All[0].Asset.Ticker != "eth" || list.All[1].Asset.Ticker != "btc" {
		t.Fatalf("expected newest-first order, got %s then %s", list.All[0].Asset.Ticker, list.All[1].Asset.Ticker)
	}

	// dangling owner rendered as Deleted User
	if list.All[0].Owner.Username != "Deleted User" || list.All[0].Owner.Email != "N/A" {
		t.Fatalf("expected Deleted User placeholder, got %+v", list.All[0].Owner)
	}
	if list.All[1].Owner.Username != "alice" || list.All[1].Owner.Email != "a@x.com" {
		t.Fatalf("expected expanded owner alice, got %+v", list.All[1].Owner)
	}
}
