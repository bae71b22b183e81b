package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/tokri/app/models"
	"github.com/shashiranjanraj/tokri/pkg/metrics"
)

// CollectionName is the MongoDB collection holding product records.
const CollectionName = "products"

type mongoProductRepository struct {
	col *mongo.Collection
}

// NewMongoRepository returns the MongoDB-backed product store.
func NewMongoRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{col: db.Collection(CollectionName)}
}

// EnsureIndexes creates the createdOn index the List sort relies on.
// Called once at startup, before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdOn", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("repositories: create createdOn index: %w", err)
	}
	return nil
}

func (m *mongoProductRepository) List(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveStoreOp("list", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdOn", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repositories: list products: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repositories: decode products: %w", err)
	}
	return products, nil
}

func (m *mongoProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	defer metrics.ObserveStoreOp("get", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var p models.Product
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("repositories: get product %s: %w", id, err)
	}
	return &p, nil
}

func (m *mongoProductRepository) Create(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveStoreOp("create", time.Now())

	// The store assigns identity and creation time; both are immutable
	// afterwards.
	p.ID = primitive.NewObjectID()
	p.CreatedOn = time.Now().UTC()

	if _, err := m.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("repositories: insert product: %w", err)
	}
	return nil
}

func (m *mongoProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer metrics.ObserveStoreOp("update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	patch := bson.M{}
	for k, v := range fields {
		// Identity and creation time are never client-writable.
		if k == "_id" || k == "id" || k == "createdOn" {
			continue
		}
		patch[k] = v
	}
	if len(patch) == 0 {
		// An empty patch still reports whether the record exists.
		return m.exists(ctx, oid)
	}

	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("repositories: update product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoProductRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("delete", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed id: nothing to delete, and delete is idempotent.
		return nil
	}

	if _, err := m.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("repositories: delete product %s: %w", id, err)
	}
	return nil
}

func (m *mongoProductRepository) exists(ctx context.Context, oid primitive.ObjectID) error {
	err := m.col.FindOne(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("repositories: lookup product %s: %w", oid.Hex(), err)
	}
	return nil
}
