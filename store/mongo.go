package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/query"
)

const (
	collProducts = "products"
	collStaging  = "products_staging"
)

// Store is the MongoDB-backed product collection.
type Store struct {
	client *mongo.Client
	db     string
}

// Connect initializes the MongoDB connection and pings the server.
func Connect(ctx context.Context, uri, db string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Println("Connected to MongoDB!")
	return &Store{client: client, db: db}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection() *mongo.Collection {
	return s.client.Database(s.db).Collection(collProducts)
}

// ReplaceAll swaps the whole products collection in one step. The new records
// go into a staging collection which is renamed over the live one with
// dropTarget, so a reader sees either the previous snapshot or the new one,
// never a mix.
func (s *Store) ReplaceAll(ctx context.Context, products []models.Product) error {
	staging := s.client.Database(s.db).Collection(collStaging)
	if err := staging.Drop(ctx); err != nil {
		return fmt.Errorf("drop staging: %w", err)
	}

	if len(products) == 0 {
		if err := s.client.Database(s.db).CreateCollection(ctx, collStaging); err != nil {
			return fmt.Errorf("create staging: %w", err)
		}
	} else {
		docs := make([]interface{}, len(products))
		for i, p := range products {
			docs[i] = p
		}
		if _, err := staging.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
			return fmt.Errorf("stage products: %w", err)
		}
	}

	cmd := bson.D{
		{Key: "renameCollection", Value: s.db + "." + collStaging},
		{Key: "to", Value: s.db + "." + collProducts},
		{Key: "dropTarget", Value: true},
	}
	if err := s.client.Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("swap collections: %w", err)
	}
	return nil
}

// Find returns the products matching the spec's filters. Ordering and
// pagination stay with the query engine.
func (s *Store) Find(ctx context.Context, spec query.Spec) ([]models.Product, error) {
	cur, err := s.collection().Find(ctx, spec.Filter())
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &p, nil
}

// Brands returns the distinct brand names present in the collection.
func (s *Store) Brands(ctx context.Context) ([]string, error) {
	values, err := s.collection().Distinct(ctx, "brand", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct brands: %w", err)
	}

	brands := make([]string, 0, len(values))
	for _, v := range values {
		if b, ok := v.(string); ok {
			brands = append(brands, b)
		}
	}
	sort.Strings(brands)
	return brands, nil
}
