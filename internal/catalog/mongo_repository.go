package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("products"),
	}
}

func (m *MongoRepository) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product

	filter := bson.M{"_id": productID}
	err := m.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (m *MongoRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Upsert inserts or replaces a product keyed by its id. Only the seeder
// writes to the products collection.
func (m *MongoRepository) Upsert(ctx context.Context, product domain.Product) error {
	filter := bson.M{"_id": product.ID}
	_, err := m.collection.ReplaceOne(ctx, filter, product, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", product.ID, err)
	}

	return nil
}
