package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

const assetsCollection = "assets"

type AssetRepository struct {
	coll *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) *AssetRepository {
	return &AssetRepository{coll: db.Collection(assetsCollection)}
}

type mongoAsset struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Ticker      string             `bson:"ticker"`
	Name        string             `bson:"name"`
	TargetPrice float64            `bson:"target_price"`
	Quantity    float64            `bson:"quantity"`
	BuyPrice    float64            `bson:"buy_price"`
	Owner       string             `bson:"owner"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (ma *mongoAsset) toDomain() *domain.Asset {
	return &domain.Asset{
		ID:          ma.ID.Hex(),
		Ticker:      ma.Ticker,
		Name:        ma.Name,
		TargetPrice: ma.TargetPrice,
		Quantity:    ma.Quantity,
		BuyPrice:    ma.BuyPrice,
		Owner:       ma.Owner,
		CreatedAt:   ma.CreatedAt,
		UpdatedAt:   ma.UpdatedAt,
	}
}

// EnsureIndexes creates the indexes backing owner-scoped listing and the
// newest-first sort order.
func (r *AssetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AssetRepository) Create(ctx context.Context, asset *domain.Asset) (*domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoAsset{
		Ticker:      asset.Ticker,
		Name:        asset.Name,
		TargetPrice: asset.TargetPrice,
		Quantity:    asset.Quantity,
		BuyPrice:    asset.BuyPrice,
		Owner:       asset.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert asset: %w", err)
	}

	created := *asset
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*domain.Asset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAssetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAsset
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("find asset: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AssetRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Asset, error) {
	return r.list(ctx, bson.M{"owner": owner})
}

func (r *AssetRepository) ListAll(ctx context.Context) ([]*domain.Asset, error) {
	return r.list(ctx, bson.M{})
}

func (r *AssetRepository) list(ctx context.Context, filter bson.M) ([]*domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer cur.Close(ctx)

	var assets []*domain.Asset
	for cur.Next(ctx) {
		var ma mongoAsset
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode asset: %w", err)
		}
		assets = append(assets, ma.toDomain())
	}
	return assets, cur.Err()
}

func (r *AssetRepository) Update(ctx context.Context, id string, update ports.AssetUpdate) (*domain.Asset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAssetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"$set": bson.M{
		"ticker":       update.Ticker,
		"name":         update.Name,
		"target_price": update.TargetPrice,
		"quantity":     update.Quantity,
		"buy_price":    update.BuyPrice,
		"updated_at":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAsset
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, set, opts).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAssetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}
